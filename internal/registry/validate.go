package registry

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/specialistvlad/gptgrid/internal/ctxlog"
)

// ValidateRegistry checks that every constructor builds a pointer to a struct whose
// Operator() matches the registered name and whose exported fields all carry
// an hcl tag.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, name := range r.Names() {
		s := r.factories[name]()
		if s == nil {
			errs = append(errs, fmt.Sprintf("operator '%s': constructor returned nil", name))
			continue
		}
		if got := s.Operator(); got != name {
			errs = append(errs, fmt.Sprintf("operator '%s': constructor builds '%s'", name, got))
		}

		t := reflect.TypeOf(s)
		if t.Kind() != reflect.Pointer || t.Elem().Kind() != reflect.Struct {
			errs = append(errs, fmt.Sprintf("operator '%s': %s is not a pointer to a struct", name, t))
			continue
		}
		t = t.Elem()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			tag := strings.Split(field.Tag.Get("hcl"), ",")[0]
			if tag == "" || tag == "-" {
				errs = append(errs, fmt.Sprintf("operator '%s': field %s has no hcl tag", name, field.Name))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("operator registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	logger.Debug("Operator registry validated.", "operators", len(r.factories))
	return nil
}
