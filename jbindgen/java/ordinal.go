package java

import (
	"github.com/broady/jbind/jbindgen/diag"
	"github.com/broady/jbind/jbindgen/internal/validation"
	"github.com/broady/jbind/jbindgen/ir"
)

// MaxItems bounds the number of items an enum may have: every ordinal must
// fit the Java int it travels as.
const MaxItems int64 = 1 << 31

// OrdinalRow is one enum item with its assigned ordinal.
type OrdinalRow struct {
	// Foreign is the Java constant name.
	Foreign string

	// Native is the unqualified Go constant name.
	Native string

	Ordinal int32
	Doc     ir.Documentation
}

// OrdinalTable is the single source of ordinals and identifiers for one enum.
// The Java class, the Go glue and the callback conversion are all rendered
// from the same table.
type OrdinalTable struct {
	Name   string
	Native ir.NativeType
	Doc    ir.Documentation
	Rows   []OrdinalRow
}

// Len returns the number of items.
func (t *OrdinalTable) Len() int { return len(t.Rows) }

// BuildOrdinalTable assigns ordinals 0..N-1 to the items of def in order.
// It fails if def has MaxItems items or more, or if a Go name, given or taken
// from the Java name, is not a Go identifier.
func BuildOrdinalTable(def *ir.EnumDefinition) (*OrdinalTable, error) {
	if err := checkCardinality(def.Name, len(def.Items), def.Source); err != nil {
		return nil, err
	}

	native := def.Native
	if native.Name == "" {
		native.Name = def.Name
	}
	if !validation.IsGoIdent(native.Name) {
		return nil, diag.Errorf(diag.CodeInvalidDefinition, def.Source,
			"enum %s: native type %s is not a Go identifier", def.Name, native.Name)
	}

	rows := make([]OrdinalRow, len(def.Items))
	for i, item := range def.Items {
		nativeName := item.NativeName
		if nativeName == "" {
			nativeName = item.Name
		}
		if !validation.IsGoIdent(nativeName) {
			return nil, diag.Errorf(diag.CodeInvalidDefinition, def.Source,
				"enum %s: item %s: native name %s is not a Go identifier", def.Name, item.Name, nativeName)
		}
		rows[i] = OrdinalRow{
			Foreign: item.Name,
			Native:  nativeName,
			Ordinal: int32(i),
			Doc:     item.Documentation,
		}
	}

	return &OrdinalTable{
		Name:   def.Name,
		Native: native,
		Doc:    def.Documentation,
		Rows:   rows,
	}, nil
}

func checkCardinality(name string, n int, src ir.Source) error {
	if int64(n) >= MaxItems {
		return diag.Errorf(diag.CodeTooManyItems, src, "too many items in enum %s: %d (limit %d)", name, n, MaxItems-1)
	}
	return nil
}
