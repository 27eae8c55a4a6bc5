package tokens

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestIssuer(t *testing.T, secret string, ttl time.Duration) *Issuer {
	t.Helper()
	iss, err := NewIssuer(secret, ttl)
	if err != nil {
		t.Fatalf("NewIssuer error: %v", err)
	}
	return iss
}

func TestIssue_ParseRoundTrip(t *testing.T) {
	iss := newTestIssuer(t, "test-secret-32-bytes-should-be-long-enough", 2*time.Minute)
	uid := primitive.NewObjectID()

	tokenStr, exp, err := iss.Issue(uid)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if time.Until(exp) <= time.Minute {
		t.Fatalf("unexpected expiry %v", exp)
	}

	claims, err := iss.Parse(tokenStr)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	got, err := claims.UserID()
	if err != nil {
		t.Fatalf("UserID error: %v", err)
	}
	if got != uid {
		t.Fatalf("unexpected sub: got=%s want=%s", got.Hex(), uid.Hex())
	}
	if claims.Remaining(time.Now()) <= 0 {
		t.Fatalf("token should have remaining lifetime")
	}
}

func TestParse_Expired(t *testing.T) {
	iss := newTestIssuer(t, "another-secret-32-bytes-longgggg", time.Minute)
	iss.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }
	tokenStr, _, err := iss.Issue(primitive.NewObjectID())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	iss.now = time.Now
	if _, err := iss.Parse(tokenStr); err == nil {
		t.Fatalf("expected parse to fail after expiry")
	}
}

func TestParse_MissingExpiryRejected(t *testing.T) {
	secret := "test-secret-32-bytes-should-be-long-enough"
	iss := newTestIssuer(t, secret, time.Minute)
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: primitive.NewObjectID().Hex()}}
	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := iss.Parse(tokenStr); err == nil {
		t.Fatalf("expected token without exp to be rejected")
	}
}

func TestParse_WrongSecretFails(t *testing.T) {
	a := newTestIssuer(t, "secret-one-32-bytes-xxxxxxxxxxxxxxxx", time.Minute)
	b := newTestIssuer(t, "different-secret-xxxxxxxxxxxxxxxx", time.Minute)
	tokenStr, _, err := a.Issue(primitive.NewObjectID())
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if _, err := b.Parse(tokenStr); err == nil {
		t.Fatalf("expected parse to fail with wrong secret")
	}
}

func TestParse_Malformed(t *testing.T) {
	iss := newTestIssuer(t, "x", time.Minute)
	if _, err := iss.Parse("not.a.jwt"); err == nil {
		t.Fatalf("expected parse to fail for malformed token")
	}
}

func TestParse_AlgNoneRejected(t *testing.T) {
	enc := base64.RawURLEncoding
	tok := enc.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`)) + "." +
		enc.EncodeToString([]byte(`{"sub":"64b000000000000000000000","exp":9999999999}`)) + "."
	iss := newTestIssuer(t, "x", time.Minute)
	if _, err := iss.Parse(tok); err == nil {
		t.Fatalf("expected parse to reject alg=none token")
	}
}

func TestParse_TamperedPayload(t *testing.T) {
	iss := newTestIssuer(t, "tamper-test-secret-32-bytes-xxxxxxx", 5*time.Minute)
	uid := primitive.NewObjectID()
	tokenStr, _, err := iss.Issue(uid)
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	parts := strings.Split(tokenStr, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token parts")
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	forged := strings.Replace(string(payload), uid.Hex(), primitive.NewObjectID().Hex(), 1)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forged))
	if _, err := iss.Parse(strings.Join(parts, ".")); err == nil {
		t.Fatalf("expected signature verification to fail for tampered token")
	}
}

func TestNewIssuer_Validation(t *testing.T) {
	if _, err := NewIssuer("", time.Minute); err == nil {
		t.Fatalf("expected error for empty secret")
	}
	if _, err := NewIssuer("s", 0); err == nil {
		t.Fatalf("expected error for zero ttl")
	}
}
