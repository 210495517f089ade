package step

import (
	"math"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Params builds a <parameters> element. The zero value is not usable; call
// NewParams.
type Params struct {
	root *etree.Element
}

// NewParams starts an empty <parameters> element.
func NewParams() *Params {
	return &Params{root: etree.NewElement("parameters")}
}

// Text adds <tag>value</tag>.
func (p *Params) Text(tag, value string) *Params {
	p.root.CreateElement(tag).SetText(value)
	return p
}

// OptText adds <tag>value</tag> only when value is not empty.
func (p *Params) OptText(tag, value string) *Params {
	if value != "" {
		p.Text(tag, value)
	}
	return p
}

// Bool adds a gpt boolean ("true"/"false").
func (p *Params) Bool(tag string, value bool) *Params {
	return p.Text(tag, strconv.FormatBool(value))
}

// Int adds an integer parameter.
func (p *Params) Int(tag string, value int) *Params {
	return p.Text(tag, strconv.Itoa(value))
}

// Float adds a floating point parameter in its shortest round-trip form.
func (p *Params) Float(tag string, value float64) *Params {
	return p.Text(tag, FormatFloat(value))
}

// List adds a comma separated list, skipping empty lists.
func (p *Params) List(tag string, values []string) *Params {
	if len(values) > 0 {
		p.Text(tag, strings.Join(values, ","))
	}
	return p
}

// Child appends an already built element.
func (p *Params) Child(el *etree.Element) *Params {
	p.root.AddChild(el)
	return p
}

// Element returns the built element.
func (p *Params) Element() *etree.Element {
	return p.root
}

// FormatFloat renders floats the way gpt reads them back: integral values keep
// a trailing ".0".
func FormatFloat(v float64) string {
	format := byte('f')
	if abs := math.Abs(v); abs != 0 && abs < 1e-4 {
		format = 'g'
	}
	s := strconv.FormatFloat(v, format, -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
