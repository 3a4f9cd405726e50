package global

import (
	"testing"
)

func TestValidateMonthKey(t *testing.T) {
	InitValidator()

	type input struct {
		Month string `validate:"omitempty,month_key"`
	}

	cases := []struct {
		value string
		valid bool
	}{
		{"2025-11", true},
		{"2025-01", true},
		{"", true}, // rỗng để omitempty/required xử lý
		{"2025-13", false},
		{"2025-00", false},
		{"2025-1", false},
		{"25-11", false},
		{"2025/11", false},
	}
	for _, c := range cases {
		err := Validate.Struct(&input{Month: c.value})
		if c.valid && err != nil {
			t.Errorf("month_key phải chấp nhận %q, nhận lỗi: %v", c.value, err)
		}
		if !c.valid && err == nil {
			t.Errorf("month_key phải từ chối %q", c.value)
		}
	}
}

func TestValidateObjectID(t *testing.T) {
	InitValidator()

	type input struct {
		ID string `validate:"omitempty,object_id"`
	}

	if err := Validate.Struct(&input{ID: "5f2a6c9e8b4d3c2a1e0f9d8c"}); err != nil {
		t.Errorf("object_id phải chấp nhận hex 24 ký tự hợp lệ: %v", err)
	}
	if err := Validate.Struct(&input{ID: "không-phải-object-id"}); err == nil {
		t.Error("object_id phải từ chối chuỗi không phải hex")
	}
}
