package fonts

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
)

// Default 是未指定字体时使用的内置字体族。
const Default = "goregular"

const builtinPrefix = "builtin:"

var builtins = map[string][]byte{
	"goregular":   goregular.TTF,
	"gomedium":    gomedium.TTF,
	"gobold":      gobold.TTF,
	"goitalic":    goitalic.TTF,
	"gomono":      gomono.TTF,
	"gomonobold":  gomonobold.TTF,
	"gosmallcaps": gosmallcaps.TTF,
}

// Builtin 返回内置字体的 TTF 数据，name 可带 "builtin:" 前缀。
func Builtin(name string) ([]byte, bool) {
	data, ok := builtins[strings.ToLower(strings.TrimPrefix(name, builtinPrefix))]
	return data, ok
}

// Resolver 按名称解析字体：先查配置中的自定义字体，再查内置字体，最后把名称当作文件路径。
type Resolver struct {
	Custom map[string]string // family name -> TTF/OTF path
}

// Load 返回字体数据；name 为空时返回默认字体。
func (r Resolver) Load(name string) ([]byte, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = Default
	}
	if strings.HasPrefix(name, builtinPrefix) {
		if data, ok := Builtin(name); ok {
			return data, nil
		}
		return nil, fmt.Errorf("找不到内置字体 %s", name)
	}
	if path, ok := r.Custom[name]; ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("读取字体 %s (%s) 失败: %w", name, path, err)
		}
		return data, nil
	}
	if data, ok := Builtin(name); ok {
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("未知字体 %q: %w", name, err)
	}
	return data, nil
}

// Names 返回所有可用的字体族名称（自定义在前），各自按字母排序。
func (r Resolver) Names() []string {
	custom := make([]string, 0, len(r.Custom))
	for name := range r.Custom {
		custom = append(custom, name)
	}
	sort.Strings(custom)
	builtin := make([]string, 0, len(builtins))
	for name := range builtins {
		if _, shadowed := r.Custom[name]; shadowed {
			continue
		}
		builtin = append(builtin, name)
	}
	sort.Strings(builtin)
	return append(custom, builtin...)
}

// IsBuiltin 判断名称是否指向内置字体。
func IsBuiltin(name string) bool {
	_, ok := Builtin(name)
	return ok
}
