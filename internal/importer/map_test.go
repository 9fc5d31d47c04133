package importer

import (
	"encoding/json"
	"testing"

	"csvnest/pkg/records"
)

func TestMapUser(t *testing.T) {
	rec := records.Record{
		"name": records.Record{"firstName": "Rohit", "lastName": "Prasad"},
		"age":  int64(35),
		"address": records.Record{
			"line1":   "A/100",
			"city":    "Pune",
			"zipCode": int64(411068),
		},
		"gender": "male",
	}
	row, age := mapUser(rec)
	if len(row) != len(Columns) {
		t.Fatalf("row has %d values for %d columns", len(row), len(Columns))
	}
	if row[0] != "Rohit Prasad" {
		t.Errorf("name = %v", row[0])
	}
	if row[1] != int64(35) || age != int64(35) {
		t.Errorf("age col = %v, age = %v", row[1], age)
	}

	var addr map[string]any
	if err := json.Unmarshal(row[2].(json.RawMessage), &addr); err != nil {
		t.Fatalf("address is not JSON: %v", err)
	}
	if addr["city"] != "Pune" {
		t.Errorf("address = %v", addr)
	}

	var extra map[string]any
	if err := json.Unmarshal(row[3].(json.RawMessage), &extra); err != nil {
		t.Fatalf("additional_info is not JSON: %v", err)
	}
	if extra["gender"] != "male" {
		t.Errorf("additional_info = %v", extra)
	}
	if _, ok := extra["name"]; ok {
		t.Error("reserved key leaked into additional_info")
	}
}

func TestMapUser_MissingParts(t *testing.T) {
	row, age := mapUser(records.Record{
		"name": records.Record{"firstName": "Ana"},
	})
	if row[0] != "Ana" {
		t.Errorf("name = %v", row[0])
	}
	if row[1] != nil || age != nil {
		t.Errorf("age = %v / %v, want nil", row[1], age)
	}
	if row[2] != nil {
		t.Errorf("address = %v, want nil", row[2])
	}
	if row[3] != nil {
		t.Errorf("additional_info = %v, want nil", row[3])
	}
}

func TestMapUser_ScalarName(t *testing.T) {
	row, _ := mapUser(records.Record{"name": "Madonna"})
	if row[0] != "Madonna" {
		t.Errorf("name = %v", row[0])
	}
}

func TestMapUser_NonNumericAge(t *testing.T) {
	row, age := mapUser(records.Record{"name": "X", "age": "unknown"})
	if row[1] != nil {
		t.Errorf("age column = %v, want nil for non-numeric", row[1])
	}
	if age != "unknown" {
		t.Errorf("raw age = %v, want original scalar", age)
	}
}

func TestUserName(t *testing.T) {
	cases := []struct {
		name string
		rec  records.Record
		want string
	}{
		{"both", records.Record{"name": records.Record{"firstName": "A", "lastName": "B"}}, "A B"},
		{"first_only", records.Record{"name": records.Record{"firstName": "A"}}, "A"},
		{"last_only", records.Record{"name": records.Record{"lastName": "B"}}, "B"},
		{"empty_parts", records.Record{"name": records.Record{"firstName": "", "lastName": ""}}, ""},
		{"scalar", records.Record{"name": "C"}, "C"},
		{"absent", records.Record{}, ""},
	}
	for _, tc := range cases {
		if got := userName(tc.rec); got != tc.want {
			t.Errorf("%s: userName = %q, want %q", tc.name, got, tc.want)
		}
	}
}
