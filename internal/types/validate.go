package types

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func structureValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		// module ids are joined with "," in core_order and keyed with ":" in module_order
		_ = validate.RegisterValidation("module_id", func(fl validator.FieldLevel) bool {
			id := fl.Field().String()
			return strings.TrimSpace(id) == id && !strings.ContainsAny(id, ",:")
		})
		validate.RegisterStructValidation(resumeStructureLevel, ResumeStructure{})
	})
	return validate
}

// resumeStructureLevel checks that core_order lists every module exactly once.
func resumeStructureLevel(sl validator.StructLevel) {
	r, ok := sl.Current().Interface().(ResumeStructure)
	if !ok {
		return
	}
	known := make(map[string]bool)
	for _, id := range r.ModuleIDs() {
		if known[id] {
			sl.ReportError(r.ExtraSections, "ExtraSections", "extra_sections", "unique_section_id", id)
			return
		}
		known[id] = true
	}
	seen := make(map[string]bool)
	for _, id := range SplitCoreOrder(r.Meta.CoreOrder) {
		if !known[id] || seen[id] {
			sl.ReportError(r.Meta.CoreOrder, "Meta.CoreOrder", "core_order", "core_order", id)
			return
		}
		seen[id] = true
	}
	for id := range known {
		if !seen[id] {
			sl.ReportError(r.Meta.CoreOrder, "Meta.CoreOrder", "core_order", "core_order", id)
			return
		}
	}
}

// Validate checks the structural invariants of a ResumeStructure.
func (r *ResumeStructure) Validate() error {
	if err := structureValidator().Struct(r); err != nil {
		return &StructureError{Message: "invalid resume structure", Cause: err}
	}
	return nil
}

// StructureError is returned when a ResumeStructure breaks an invariant.
type StructureError struct {
	Message string
	Cause   error
}

func (e *StructureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *StructureError) Unwrap() error {
	return e.Cause
}
