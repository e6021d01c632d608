package live

import (
	"github.com/peamaeq/makepad/id"
	"github.com/peamaeq/makepad/token"
)

// Node is one entry of a level.
type Node struct {
	ID      id.Id
	TokenID token.TokenID
	Value   Value
}

// Value is a tagged union: Type says which of the other fields are
// meaningful.
//
//   - Bool, Int, Float, Color: the field of the same name.
//   - Vec2, Vec3: Vec[0:2] and Vec[0:3].
//   - Id: ID.
//   - String: Start/Count in the document's string pool.
//   - Class: ID is the class name, Start/Count the child run.
//   - Object: Start/Count the child run; each child's id is its key.
//   - Array: Start/Count the child run of Empty id nodes.
//   - Call: ID is the call target, Start/Count the argument run.
//   - Use: ID is a crate::module Multi id.
//   - Fn: Start/Count in the token pool, ScopeStart/ScopeCount in the scope
//     pool.
type Value struct {
	Type  Type
	Bool  bool
	Int   int64
	Float float64
	Color uint32
	Vec   [3]float32
	ID    id.Id

	Start      uint32
	Count      uint32
	ScopeStart uint32
	ScopeCount uint32
}

func (v Value) IsSimple() bool { return v.Type.IsSimple() }

func (v Value) IsClass() bool { return v.Type == ClassType }

// Children returns the child run of a composite value.
func (v Value) Children() (start, count int) {
	if !v.Type.HasChildren() {
		return 0, 0
	}
	return int(v.Start), int(v.Count)
}

func Bool(v bool) Value {
	return Value{Type: BoolType, Bool: v}
}

func Int(v int64) Value {
	return Value{Type: IntType, Int: v}
}

func Float(v float64) Value {
	return Value{Type: FloatType, Float: v}
}

// Color holds 0xRRGGBBAA.
func Color(v uint32) Value {
	return Value{Type: ColorType, Color: v}
}

func Vec2(x, y float32) Value {
	return Value{Type: Vec2Type, Vec: [3]float32{x, y, 0}}
}

func Vec3(x, y, z float32) Value {
	return Value{Type: Vec3Type, Vec: [3]float32{x, y, z}}
}

func IdValue(v id.Id) Value {
	return Value{Type: IdType, ID: v}
}

func StringRef(start, count uint32) Value {
	return Value{Type: StringType, Start: start, Count: count}
}

func Class(class id.Id, start, count uint32) Value {
	return Value{Type: ClassType, ID: class, Start: start, Count: count}
}

func Object(start, count uint32) Value {
	return Value{Type: ObjectType, Start: start, Count: count}
}

func Array(start, count uint32) Value {
	return Value{Type: ArrayType, Start: start, Count: count}
}

func Call(target id.Id, start, count uint32) Value {
	return Value{Type: CallType, ID: target, Start: start, Count: count}
}

func Use(crateModule id.Id) Value {
	return Value{Type: UseType, ID: crateModule}
}

func Fn(tokenStart, tokenCount, scopeStart, scopeCount uint32) Value {
	return Value{
		Type:       FnType,
		Start:      tokenStart,
		Count:      tokenCount,
		ScopeStart: scopeStart,
		ScopeCount: scopeCount,
	}
}

// CrateModule names a module of a crate.
type CrateModule struct {
	Crate  id.Id
	Module id.Id
}

func (c CrateModule) Format(names *id.Registry) string {
	return names.Format(c.Crate) + id.ColonSep + names.Format(c.Module)
}

type ScopeKind int

const (
	LocalScope ScopeKind = iota
	UseScope
)

// ScopeTarget is what a name captured by a function refers to.
type ScopeTarget struct {
	Kind        ScopeKind
	CrateModule CrateModule
	Ptr         id.Ptr
}

func LocalTarget(ptr id.Ptr) ScopeTarget {
	return ScopeTarget{Kind: LocalScope, Ptr: ptr}
}

func UseTarget(cm CrateModule, ptr id.Ptr) ScopeTarget {
	return ScopeTarget{Kind: UseScope, CrateModule: cm, Ptr: ptr}
}

func (t ScopeTarget) Format(names *id.Registry) string {
	if t.Kind == LocalScope {
		return "[local]"
	}
	return t.CrateModule.Format(names)
}

type ScopeItem struct {
	ID     id.Id
	Target ScopeTarget
}
