package behaviour

import (
	"fmt"

	"github.com/aretw0/animclone/pkg/domain"
	"github.com/mohae/deepcopy"
)

// Raw is a behaviour the host can construct but does not model.
// Its fields are carried as an untyped bundle.
type Raw struct {
	domain.BehaviourBase
	TypeName string
	Fields   map[string]any
}

func (b *Raw) TypeID() string     { return b.TypeName }
func (b *Raw) ObjectName() string { return b.TypeName }

func (b *Raw) CopyTo(dst domain.Behaviour) error {
	d, ok := dst.(*Raw)
	if !ok {
		return fmt.Errorf("cannot copy %s into %T", b.TypeName, dst)
	}
	if d.TypeName != b.TypeName {
		return fmt.Errorf("cannot copy %s into %s", b.TypeName, d.TypeName)
	}
	d.Fields = copyFields(b.Fields)
	return nil
}

// copyFields deep copies a serialized field bundle so source and copy never share
// nested maps or slices.
func copyFields(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}
	out, _ := deepcopy.Copy(fields).(map[string]any)
	return out
}
