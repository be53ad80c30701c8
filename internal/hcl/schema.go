package hcl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	DataTypes []*dataTypeBlock `hcl:"data_type,block"`
	Classes   []*classBlock    `hcl:"class,block"`
	Projects  []*projectBlock  `hcl:"project,block"`
	Pages     []*pageBlock     `hcl:"page,block"`
	Documents []*documentBlock `hcl:"document,block"`
	Remain    hcl.Body         `hcl:",remain"`
}

type dataTypeBlock struct {
	Name    string         `hcl:"name,label"`
	Literal hcl.Expression `hcl:"literal,optional"`
	Default hcl.Expression `hcl:"default,optional"`
}

type classBlock struct {
	Name        string         `hcl:"name,label"`
	DisplayName string         `hcl:"display_name,optional"`
	Category    string         `hcl:"category,optional"`
	Description string         `hcl:"description,optional"`
	Inputs      []*vertexBlock `hcl:"input,block"`
	Outputs     []*vertexBlock `hcl:"output,block"`
}

type vertexBlock struct {
	Name        string         `hcl:"name,label"`
	Type        string         `hcl:"type"`
	Access      string         `hcl:"access,optional"`
	Description string         `hcl:"description,optional"`
	Default     hcl.Expression `hcl:"default,optional"`
}

type projectBlock struct {
	BuildPage    string `hcl:"build_page,optional"`
	AuditionPage string `hcl:"audition_page,optional"`
	DefaultPage  string `hcl:"default_page,optional"`
}

type pageBlock struct {
	Name      string   `hcl:"name,label"`
	ID        string   `hcl:"id,optional"`
	Fallbacks []string `hcl:"fallbacks,optional"`
}

type documentBlock struct {
	Name            string         `hcl:"name,label"`
	BuildPage       string         `hcl:"build_page,optional"`
	PresetOf        string         `hcl:"preset_of,optional"`
	InheritDefaults []string       `hcl:"inherit_defaults,optional"`
	Inputs          []*memberBlock `hcl:"input,block"`
	Outputs         []*memberBlock `hcl:"output,block"`
	Variables       []*memberBlock `hcl:"variable,block"`
	Graphs          []*graphBlock  `hcl:"graph,block"`

	// file is the path the block was read from, for error messages.
	file string
}

type memberBlock struct {
	Name     string    `hcl:"name,label"`
	ID       string    `hcl:"id,optional"`
	Type     string    `hcl:"type"`
	Defaults cty.Value `hcl:"defaults,optional"`
}

type graphBlock struct {
	Page        string             `hcl:"page,label"`
	Nodes       []*nodeBlock       `hcl:"node,block"`
	Connections []*connectionBlock `hcl:"connection,block"`
	Comments    []*commentBlock    `hcl:"comment,block"`
}

type nodeBlock struct {
	Label          string    `hcl:"label,label"`
	ID             string    `hcl:"id,optional"`
	Class          string    `hcl:"class,optional"`
	Input          string    `hcl:"input,optional"`
	Output         string    `hcl:"output,optional"`
	Variable       string    `hcl:"variable,optional"`
	Position       []float64 `hcl:"position,optional"`
	Comment        string    `hcl:"comment,optional"`
	CommentVisible bool      `hcl:"comment_visible,optional"`
	Inputs         cty.Value `hcl:"inputs,optional"`
	Config         cty.Value `hcl:"config,optional"`
}

type connectionBlock struct {
	ID   string `hcl:"id,optional"`
	From string `hcl:"from"`
	To   string `hcl:"to"`
}

type commentBlock struct {
	Label    string    `hcl:"label,label"`
	ID       string    `hcl:"id,optional"`
	Text     string    `hcl:"text"`
	Position []float64 `hcl:"position,optional"`
	Size     []float64 `hcl:"size,optional"`
	Color    string    `hcl:"color,optional"`
}
