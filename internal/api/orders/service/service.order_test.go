// Package ordersvc - Test sinh mã đơn hàng.
package ordersvc

import (
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildOrderCode(t *testing.T) {
	id := primitive.NewObjectID()
	code := buildOrderCode(id)

	if !strings.HasPrefix(code, "LP-") {
		t.Errorf("Mã đơn hàng phải có prefix LP-, nhận %s", code)
	}
	if len(code) != len("LP-")+8 {
		t.Errorf("Mã đơn hàng phải có 8 ký tự sau prefix, nhận %s", code)
	}
	if code != strings.ToUpper(code) {
		t.Errorf("Mã đơn hàng phải viết hoa, nhận %s", code)
	}

	// Hai ObjectID khác nhau phải cho mã khác nhau (phần hex cuối gồm counter)
	other := buildOrderCode(primitive.NewObjectID())
	if code == other {
		t.Errorf("Hai đơn liên tiếp không được trùng mã: %s", code)
	}
}
