package live

import "fmt"

type Type int

const (
	BoolType Type = iota
	IntType
	FloatType
	ColorType
	Vec2Type
	Vec3Type
	IdType
	StringType
	ClassType
	ObjectType
	ArrayType
	CallType
	UseType
	FnType
)

var typeNames = map[Type]string{
	BoolType:   "Bool",
	IntType:    "Int",
	FloatType:  "Float",
	ColorType:  "Color",
	Vec2Type:   "Vec2",
	Vec3Type:   "Vec3",
	IdType:     "Id",
	StringType: "String",
	ClassType:  "Class",
	ObjectType: "Object",
	ArrayType:  "Array",
	CallType:   "Call",
	UseType:    "Use",
	FnType:     "Fn",
}

func (t Type) String() string {
	s, ok := typeNames[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	for k, v := range typeNames {
		if v == string(d) {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("unrecognized type %q", d)
}

func Types() []Type {
	return []Type{
		BoolType,
		IntType,
		FloatType,
		ColorType,
		Vec2Type,
		Vec3Type,
		IdType,
		StringType,
		ClassType,
		ObjectType,
		ArrayType,
		CallType,
		UseType,
		FnType,
	}
}

// IsSimple reports whether values of type t print on one line and own no
// children.
func (t Type) IsSimple() bool {
	switch t {
	case ClassType, ObjectType, ArrayType, CallType, FnType:
		return false
	default:
		return true
	}
}

// HasChildren reports whether values of type t address a child run in the
// next level.
func (t Type) HasChildren() bool {
	switch t {
	case ClassType, ObjectType, ArrayType, CallType:
		return true
	default:
		return false
	}
}
