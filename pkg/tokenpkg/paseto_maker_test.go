package tokenpkg

import (
	"testing"
	"time"

	"github.com/corebank/ledger/pkg/randompkg"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestPasetoMaker(t *testing.T) {
	t.Parallel()

	secretKey := randompkg.String(32)

	maker, err := NewPasetoMaker(secretKey)
	if err != nil {
		t.Fatalf("NewPasetoMaker(%v) returned error: %v", secretKey, err)
	}

	userID := randompkg.Int64Between(1, 1000)
	customerID := randompkg.Int64Between(1, 1000)
	duration := time.Minute

	token, payload, err := maker.CreateToken(userID, "customer", customerID, duration)
	if err != nil {
		t.Errorf("maker.CreateToken(%v, customer, %v, %v) returned error: %v", userID, customerID, duration, err)
	}

	_, err = maker.VerifyToken(token)
	if err != nil {
		t.Errorf("maker.VerifyToken(%v) returned error: %v", token, err)
	}

	want := &Payload{
		UserID:     userID,
		Role:       "customer",
		CustomerID: customerID,
		IssuedAt:   time.Now(),
		ExpiredAt:  time.Now().Add(duration),
	}

	ignore := cmpopts.IgnoreFields(Payload{}, "ID")
	delta := cmpopts.EquateApproxTime(time.Minute)

	if diff := cmp.Diff(payload, want, ignore, delta); diff != "" {
		t.Errorf("maker.CreateToken(%v, customer, %v, %v) returned unexpected diff: %v", userID, customerID, duration, diff)
	}
}

func TestExpiredPasetoToken(t *testing.T) {
	t.Parallel()

	secretKey := randompkg.String(32)

	maker, err := NewPasetoMaker(secretKey)
	if err != nil {
		t.Fatalf("NewPasetoMaker(%v) returned error: %v", secretKey, err)
	}

	userID := randompkg.Int64Between(1, 1000)
	duration := -time.Minute

	token, _, err := maker.CreateToken(userID, "customer", userID, duration)
	if err != nil {
		t.Errorf("maker.CreateToken(%v, customer, %v, %v) returned error: %v", userID, userID, duration, err)
	}

	_, err = maker.VerifyToken(token)
	if err != ErrExpiredToken {
		t.Errorf("maker.VerifyToken(%v) returned unexpected error: %v", token, err)
	}
}
