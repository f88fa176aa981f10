package predicate

import (
	"fmt"

	"github.com/asaidimu/go-recordview/core/schema"
)

// Resolve walks a field descriptor's path against a record and returns the
// terminal field's raw value. Every non-terminal segment must be a loaded
// relation field holding another record; a null relation short-circuits the
// walk and resolves to nil, since the terminal value is absent rather than
// unfetched. A segment that was never loaded is an error: the caller must
// fetch the field before inspecting it.
func Resolve(r *schema.Record, fd schema.FieldDescriptor) (any, error) {
	current := r
	for i, segment := range fd.Path {
		value, ok := current.Get(segment)
		if !ok {
			return nil, fmt.Errorf("resolving %q, segment %q on schema %q: %w",
				fd.String(), segment, current.Schema(), schema.ErrFieldNotLoaded)
		}
		if i == len(fd.Path)-1 {
			return value, nil
		}
		if value == nil {
			// Null relation: the chain ends here with no value.
			return nil, nil
		}
		related, ok := value.(*schema.Record)
		if !ok {
			return nil, fmt.Errorf("resolving %q, segment %q holds %T: %w",
				fd.String(), segment, value, ErrInvalidPath)
		}
		current = related
	}
	return nil, fmt.Errorf("resolving empty field path on schema %q: %w",
		r.Schema(), ErrInvalidPath)
}
