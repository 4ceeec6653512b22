package service

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/net/context"
)

func newMagicFixture(t *testing.T, mailer *fakeMailer, ttl time.Duration) (*MagicLinkService, string) {
	t.Helper()
	store := newFakeLinkStore()
	linkID := seedLink(t, store, "", nil)
	svc := NewMagicLinkService(store, newFakeTokenStore(), mailer, "http://localhost:8000", ttl)
	return svc, linkID
}

func tokenFromURL(t *testing.T, redemptionURL string) string {
	t.Helper()
	idx := strings.Index(redemptionURL, "token=")
	if idx < 0 {
		t.Fatalf("no token in %s", redemptionURL)
	}
	return redemptionURL[idx+len("token="):]
}

// TestIssueAndRedeem tests the happy path.
func TestIssueAndRedeem(t *testing.T) {
	mailer := &fakeMailer{}
	svc, linkID := newMagicFixture(t, mailer, time.Minute)

	redemptionURL, err := svc.IssueViewToken(context.Background(), "a@example.com", linkID)
	if err != nil {
		t.Fatalf("IssueViewToken failed: %v", err)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "a@example.com" {
		t.Fatalf("expect one mail to a@example.com, got %v", mailer.sent)
	}

	email, redirectTo, err := svc.RedeemViewToken(context.Background(), tokenFromURL(t, redemptionURL))
	if err != nil {
		t.Fatalf("RedeemViewToken failed: %v", err)
	}
	if email != "a@example.com" {
		t.Fatalf("expect bound email, got %s", email)
	}
	if redirectTo != "/links/view/"+linkID {
		t.Fatalf("unexpected redirect %s", redirectTo)
	}
}

// TestRedeemSingleUse tests that a token redeems exactly once.
func TestRedeemSingleUse(t *testing.T) {
	svc, linkID := newMagicFixture(t, &fakeMailer{}, time.Minute)

	redemptionURL, err := svc.IssueViewToken(context.Background(), "a@example.com", linkID)
	if err != nil {
		t.Fatal(err)
	}
	token := tokenFromURL(t, redemptionURL)

	if _, _, err := svc.RedeemViewToken(context.Background(), token); err != nil {
		t.Fatalf("first redemption failed: %v", err)
	}
	if _, _, err := svc.RedeemViewToken(context.Background(), token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expect ErrTokenInvalid on replay, got %v", err)
	}
}

// TestRedeemConcurrent tests that racing redemptions yield one winner.
func TestRedeemConcurrent(t *testing.T) {
	svc, linkID := newMagicFixture(t, &fakeMailer{}, time.Minute)

	redemptionURL, err := svc.IssueViewToken(context.Background(), "a@example.com", linkID)
	if err != nil {
		t.Fatal(err)
	}
	token := tokenFromURL(t, redemptionURL)

	const attempts = 16
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := svc.RedeemViewToken(context.Background(), token); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("expect exactly 1 successful redemption, got %d", wins)
	}
}

// TestRedeemExpired tests lazy TTL expiry at redemption time.
func TestRedeemExpired(t *testing.T) {
	svc, linkID := newMagicFixture(t, &fakeMailer{}, 10*time.Millisecond)

	redemptionURL, err := svc.IssueViewToken(context.Background(), "a@example.com", linkID)
	if err != nil {
		t.Fatal(err)
	}
	time.Sleep(30 * time.Millisecond)

	_, _, err = svc.RedeemViewToken(context.Background(), tokenFromURL(t, redemptionURL))
	if !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expect ErrTokenInvalid after TTL, got %v", err)
	}
}

// TestRedeemUnknownToken tests that an unknown token is denied.
func TestRedeemUnknownToken(t *testing.T) {
	svc, _ := newMagicFixture(t, &fakeMailer{}, time.Minute)

	if _, _, err := svc.RedeemViewToken(context.Background(), "bogus"); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expect ErrTokenInvalid, got %v", err)
	}
	if _, _, err := svc.RedeemViewToken(context.Background(), ""); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expect ErrTokenInvalid for empty token, got %v", err)
	}
}

// TestIssueDeliveryFailure tests that a failed send still issues the token.
func TestIssueDeliveryFailure(t *testing.T) {
	mailer := &fakeMailer{failed: true, err: errors.New("smtp down")}
	svc, linkID := newMagicFixture(t, mailer, time.Minute)

	redemptionURL, err := svc.IssueViewToken(context.Background(), "a@example.com", linkID)
	var deliveryErr *DeliveryError
	if !errors.As(err, &deliveryErr) {
		t.Fatalf("expect *DeliveryError, got %v", err)
	}
	if redemptionURL == "" {
		t.Fatal("expect redemption URL despite delivery failure")
	}

	// The token was issued before the send failed and must still redeem.
	email, _, err := svc.RedeemViewToken(context.Background(), tokenFromURL(t, redemptionURL))
	if err != nil {
		t.Fatalf("redeem after failed delivery: %v", err)
	}
	if email != "a@example.com" {
		t.Fatalf("expect bound email, got %s", email)
	}
}

// TestIssueUnknownLink tests issuance against a missing link.
func TestIssueUnknownLink(t *testing.T) {
	svc := NewMagicLinkService(newFakeLinkStore(), newFakeTokenStore(), &fakeMailer{}, "http://localhost:8000", time.Minute)

	_, err := svc.IssueViewToken(context.Background(), "a@example.com", "no-such-link")
	if !errors.Is(err, ErrLinkNotFound) {
		t.Fatalf("expect ErrLinkNotFound, got %v", err)
	}
}
