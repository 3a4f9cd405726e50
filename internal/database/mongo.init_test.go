// Package database - Test parse tag index từ struct model.
package database

import "testing"

func TestParseIndexTag_SingleAttr(t *testing.T) {
	entries := parseIndexTag("unique,sparse")
	if len(entries) != 1 {
		t.Fatalf("Muốn 1 cấu hình, nhận %d", len(entries))
	}
	if _, ok := entries[0]["unique"]; !ok {
		t.Error("Thiếu thuộc tính unique")
	}
	if _, ok := entries[0]["sparse"]; !ok {
		t.Error("Thiếu thuộc tính sparse")
	}
}

func TestParseIndexTag_KeyValue(t *testing.T) {
	entries := parseIndexTag("ttl:3600")
	if len(entries) != 1 {
		t.Fatalf("Muốn 1 cấu hình, nhận %d", len(entries))
	}
	if entries[0]["ttl"] != "3600" {
		t.Errorf("ttl sai: muốn 3600, nhận %q", entries[0]["ttl"])
	}
}

func TestParseIndexTag_MultipleConfigs(t *testing.T) {
	entries := parseIndexTag("single;compound:user_created,order:-1")
	if len(entries) != 2 {
		t.Fatalf("Muốn 2 cấu hình, nhận %d", len(entries))
	}
	if _, ok := entries[0]["single"]; !ok {
		t.Error("Cấu hình thứ nhất thiếu single")
	}
	if entries[1]["compound"] != "user_created" {
		t.Errorf("compound sai: nhận %q", entries[1]["compound"])
	}
	if entries[1]["order"] != "-1" {
		t.Errorf("order sai: nhận %q", entries[1]["order"])
	}
}

func TestParseOrder(t *testing.T) {
	if parseOrder("compound:g,order:-1") != -1 {
		t.Error("order:-1 phải trả về -1")
	}
	if parseOrder("compound:g") != 1 {
		t.Error("Mặc định phải trả về 1")
	}
}
