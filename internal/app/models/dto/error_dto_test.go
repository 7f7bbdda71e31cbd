package dto

import (
	"encoding/json"
	"testing"
)

func TestResolveMessageOrder(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"message first", `{"success":false,"message":"ไม่พบข้อมูล","errors":[{"msg":"x"}]}`, "ไม่พบข้อมูล"},
		{"errors array", `{"success":false,"errors":[{"msg":"รหัสนักศึกษาต้องเป็นตัวเลข 8 หลัก","param":"student_id"}]}`, "รหัสนักศึกษาต้องเป็นตัวเลข 8 หลัก"},
		{"error object", `{"success":false,"error":{"code":"RECORD_NOT_FOUND","message":"not found"}}`, "not found"},
		{"nothing", `{"success":false}`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var resp ErrorResponse
			if err := json.Unmarshal([]byte(tc.body), &resp); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if got := resp.ResolveMessage(); got != tc.want {
				t.Fatalf("ResolveMessage = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNewListNeverNil(t *testing.T) {
	resp := NewList[int](nil, PaginationInfo{})
	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"success":true,"data":[],"pagination":{"total":0,"page":0,"limit":0,"totalPages":0}}` {
		t.Fatalf("unexpected json %s", b)
	}
}

func TestFieldErrorResponseKeepsOrder(t *testing.T) {
	fields := map[string]string{
		"email":      "E",
		"phone":      "P",
		"student_id": "S",
		"year":       "Y",
	}
	names := []string{"email", "phone", "student_id", "year"}
	for i := 0; i < 50; i++ {
		resp := NewFieldErrorResponse(names, fields)
		if len(resp.Errors) != 4 {
			t.Fatalf("got %d entries", len(resp.Errors))
		}
		for j, fe := range resp.Errors {
			if fe.Param != names[j] || fe.Msg != fields[names[j]] {
				t.Fatalf("entry %d = %+v, want %s", j, fe, names[j])
			}
		}
		if got := resp.ResolveMessage(); got != "E" {
			t.Fatalf("ResolveMessage = %q, want E", got)
		}
	}
}

func TestFieldErrorResponseSkipsUnknownNames(t *testing.T) {
	resp := NewFieldErrorResponse([]string{"missing", "year"}, map[string]string{"year": "Y"})
	if len(resp.Errors) != 1 || resp.Errors[0].Param != "year" {
		t.Fatalf("unexpected errors %+v", resp.Errors)
	}
}
