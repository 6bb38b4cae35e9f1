package profile

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ByLCY/pagecast/dsl"
)

// Set 是解析并展开继承关系后的档案集合。
type Set struct {
	profiles map[string]Profile
	order    []string
}

// NewSet 返回只包含 Default() 的集合。
func NewSet() *Set {
	d := Default()
	return &Set{profiles: map[string]Profile{d.Name: d}, order: []string{d.Name}}
}

// Parse 解析档案 DSL。没有 extends 的档案以 Default() 为起点；
// 名为 default 的档案会覆盖内置默认值。
func Parse(r io.Reader) (*Set, error) {
	return parseNamed("", r)
}

// Load 从文件读取档案 DSL。
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("无法打开档案文件 %s: %w", path, err)
	}
	defer f.Close()
	return parseNamed(path, f)
}

func parseNamed(name string, r io.Reader) (*Set, error) {
	file, err := dsl.ParseNamed(name, r)
	if err != nil {
		return nil, fmt.Errorf("解析档案 DSL 失败: %w", err)
	}
	return resolve(file)
}

// Get 返回指定名称的档案。
func (s *Set) Get(name string) (Profile, bool) {
	p, ok := s.profiles[name]
	return p, ok
}

// Lookup 与 Get 相同，但 name 为空时返回 default，找不到时返回 ErrUnknownProfile。
func (s *Set) Lookup(name string) (Profile, error) {
	if name == "" {
		name = Default().Name
	}
	p, ok := s.profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q（可选 %s）", ErrUnknownProfile, name, strings.Join(s.order, ", "))
	}
	return p, nil
}

// Names 按声明顺序返回档案名称，内置 default 在最前。
func (s *Set) Names() []string {
	return append([]string(nil), s.order...)
}

type resolver struct {
	decls    map[string]*dsl.Profile
	resolved map[string]Profile
	visiting []string
}

func resolve(file *dsl.File) (*Set, error) {
	set := NewSet()
	r := &resolver{
		decls:    map[string]*dsl.Profile{},
		resolved: map[string]Profile{},
	}
	for _, decl := range file.Profiles {
		if prev, ok := r.decls[decl.Name]; ok {
			return nil, fmt.Errorf("%s: 档案 %q 重复定义（首次定义于 %s）", decl.Pos, decl.Name, prev.Pos)
		}
		r.decls[decl.Name] = decl
		if decl.Name != Default().Name {
			set.order = append(set.order, decl.Name)
		}
	}
	for _, decl := range file.Profiles {
		p, err := r.profile(decl.Name)
		if err != nil {
			return nil, err
		}
		set.profiles[decl.Name] = p
	}
	return set, nil
}

func (r *resolver) profile(name string) (Profile, error) {
	if p, ok := r.resolved[name]; ok {
		return p, nil
	}
	decl, ok := r.decls[name]
	if !ok {
		if name == Default().Name {
			return Default(), nil
		}
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	for _, v := range r.visiting {
		if v == name {
			chain := append(append([]string(nil), r.visiting...), name)
			return Profile{}, fmt.Errorf("%s: 档案继承存在循环: %s", decl.Pos, strings.Join(chain, " -> "))
		}
	}
	r.visiting = append(r.visiting, name)
	defer func() { r.visiting = r.visiting[:len(r.visiting)-1] }()

	base := Default()
	if decl.Extends != "" {
		parent, err := r.profile(decl.Extends)
		if err != nil {
			return Profile{}, fmt.Errorf("%s: 档案 %q 继承 %q 失败: %w", decl.Pos, name, decl.Extends, err)
		}
		base = parent
	}
	p := base
	p.Name = name
	for _, s := range decl.Block.Settings {
		if err := p.Set(s.Key, s.Value.Text()); err != nil {
			return Profile{}, fmt.Errorf("%s: %w", s.Pos, err)
		}
	}
	r.resolved[name] = p
	return p, nil
}
