// AngelaMos | 2026
// type.go

package project

import (
	"strings"

	"github.com/carterperez-dev/templates/project-records/internal/core"
)

type Type string

const (
	TypeInternal    Type = "INTERNAL"
	TypeExternal    Type = "EXTERNAL"
	TypeMaintenance Type = "MAINTENANCE"
	TypeDevelopment Type = "DEVELOPMENT"
)

func Types() []Type {
	return []Type{TypeInternal, TypeExternal, TypeMaintenance, TypeDevelopment}
}

func (t Type) IsValid() bool {
	switch t {
	case TypeInternal, TypeExternal, TypeMaintenance, TypeDevelopment:
		return true
	default:
		return false
	}
}

func (t Type) String() string {
	return string(t)
}

// ParseType accepts any letter case and surrounding whitespace.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", core.ValidationError("type", "must be one of INTERNAL, EXTERNAL, MAINTENANCE, DEVELOPMENT")
	}
	return t, nil
}
