package main

import (
	"fmt"
	"strings"
)

// TitleOverlay collects per-second stats shown in the window title.
type TitleOverlay struct {
	base  string
	parts []string
}

func NewTitleOverlay(base string) *TitleOverlay {
	return &TitleOverlay{base: base}
}

func (o *TitleOverlay) AddPart(format string, args ...any) {
	o.parts = append(o.parts, fmt.Sprintf(format, args...))
}

func (o *TitleOverlay) Clear() {
	o.parts = o.parts[:0]
}

func (o *TitleOverlay) Text() string {
	if len(o.parts) == 0 {
		return o.base
	}
	return o.base + " | " + strings.Join(o.parts, " | ")
}
