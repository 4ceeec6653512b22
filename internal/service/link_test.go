package service

import (
	"DocVault/utils"
	"errors"
	"testing"
	"time"

	"golang.org/x/net/context"
)

// TestCreateLinkNothingToShare tests creation without a document reference.
func TestCreateLinkNothingToShare(t *testing.T) {
	svc := NewLinkService(newFakeLinkStore())

	_, err := svc.CreateLink(context.Background(), 1, CreateLinkInput{FileName: "report.pdf"})
	if !errors.Is(err, ErrNothingToShare) {
		t.Fatalf("expect ErrNothingToShare, got %v", err)
	}
}

// TestCreateLinkHashesPassword tests that plaintext is never stored.
func TestCreateLinkHashesPassword(t *testing.T) {
	svc := NewLinkService(newFakeLinkStore())

	link, err := svc.CreateLink(context.Background(), 1, CreateLinkInput{
		FileName: "report.pdf",
		URL:      "https://example.com/doc",
		Password: "hunter2",
	})
	if err != nil {
		t.Fatalf("CreateLink failed: %v", err)
	}
	if link.LinkID == "" {
		t.Fatal("link id is empty")
	}
	if link.PasswordHash == nil {
		t.Fatal("password hash not stored")
	}
	if *link.PasswordHash == "hunter2" {
		t.Fatal("plaintext password persisted")
	}
	if !utils.CheckPwd("hunter2", *link.PasswordHash) {
		t.Fatal("stored hash does not verify")
	}
}

// TestCreateLinkStoresExpiryVerbatim tests that expiry is not normalized.
func TestCreateLinkStoresExpiryVerbatim(t *testing.T) {
	svc := NewLinkService(newFakeLinkStore())

	expiresAt := time.Now().Add(48 * time.Hour).UTC()
	link, err := svc.CreateLink(context.Background(), 1, CreateLinkInput{
		URL:       "https://example.com/doc",
		ExpiresAt: &expiresAt,
	})
	if err != nil {
		t.Fatalf("CreateLink failed: %v", err)
	}
	if link.ExpiresAt == nil || !link.ExpiresAt.Equal(expiresAt) {
		t.Fatalf("expect expiry %v, got %v", expiresAt, link.ExpiresAt)
	}
}

// TestUpdateLinkOwnership tests the owner check.
func TestUpdateLinkOwnership(t *testing.T) {
	store := newFakeLinkStore()
	svc := NewLinkService(store)

	link, err := svc.CreateLink(context.Background(), 1, CreateLinkInput{URL: "https://example.com/doc"})
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.UpdateLink(context.Background(), 2, link.LinkID, UpdateLinkInput{FileName: "stolen.pdf"})
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expect ErrNotOwner, got %v", err)
	}

	_, err = svc.UpdateLink(context.Background(), 1, "no-such-link", UpdateLinkInput{})
	if !errors.Is(err, ErrLinkNotFound) {
		t.Fatalf("expect ErrLinkNotFound, got %v", err)
	}
}

// TestUpdateLinkFilenameOnly tests that unrelated fields survive a rename.
func TestUpdateLinkFilenameOnly(t *testing.T) {
	store := newFakeLinkStore()
	svc := NewLinkService(store)

	expiresAt := time.Now().Add(24 * time.Hour)
	link, err := svc.CreateLink(context.Background(), 1, CreateLinkInput{
		FileName:  "v1.pdf",
		URL:       "https://example.com/doc",
		Password:  "hunter2",
		ExpiresAt: &expiresAt,
	})
	if err != nil {
		t.Fatal(err)
	}
	oldHash := *link.PasswordHash

	updated, err := svc.UpdateLink(context.Background(), 1, link.LinkID, UpdateLinkInput{FileName: "v2.pdf"})
	if err != nil {
		t.Fatalf("UpdateLink failed: %v", err)
	}
	if updated.FileName != "v2.pdf" {
		t.Fatalf("expect renamed file, got %s", updated.FileName)
	}
	if updated.PasswordHash == nil || *updated.PasswordHash != oldHash {
		t.Fatal("password hash changed by rename")
	}
	if updated.ExpiresAt == nil || !updated.ExpiresAt.Equal(expiresAt) {
		t.Fatal("expiry changed by rename")
	}
}

// TestUpdateLinkPasswordActions tests the keep/clear/set tri-state.
func TestUpdateLinkPasswordActions(t *testing.T) {
	store := newFakeLinkStore()
	svc := NewLinkService(store)

	link, err := svc.CreateLink(context.Background(), 1, CreateLinkInput{
		URL:      "https://example.com/doc",
		Password: "hunter2",
	})
	if err != nil {
		t.Fatal(err)
	}
	oldHash := *link.PasswordHash

	// keep
	kept, err := svc.UpdateLink(context.Background(), 1, link.LinkID, UpdateLinkInput{Password: PasswordKeep})
	if err != nil {
		t.Fatal(err)
	}
	if kept.PasswordHash == nil || *kept.PasswordHash != oldHash {
		t.Fatal("keep changed the hash")
	}

	// set
	set, err := svc.UpdateLink(context.Background(), 1, link.LinkID, UpdateLinkInput{
		Password:    PasswordSet,
		NewPassword: "swordfish",
	})
	if err != nil {
		t.Fatal(err)
	}
	if set.PasswordHash == nil || !utils.CheckPwd("swordfish", *set.PasswordHash) {
		t.Fatal("set did not install the new password")
	}

	// clear
	cleared, err := svc.UpdateLink(context.Background(), 1, link.LinkID, UpdateLinkInput{Password: PasswordClear})
	if err != nil {
		t.Fatal(err)
	}
	if cleared.PasswordHash != nil {
		t.Fatal("clear left a hash behind")
	}
}

// TestUpdateLinkExpiry tests setting and clearing expiration.
func TestUpdateLinkExpiry(t *testing.T) {
	store := newFakeLinkStore()
	svc := NewLinkService(store)

	link, err := svc.CreateLink(context.Background(), 1, CreateLinkInput{URL: "https://example.com/doc"})
	if err != nil {
		t.Fatal(err)
	}

	expiresAt := time.Now().Add(72 * time.Hour)
	updated, err := svc.UpdateLink(context.Background(), 1, link.LinkID, UpdateLinkInput{ExpiresAt: &expiresAt})
	if err != nil {
		t.Fatal(err)
	}
	if updated.ExpiresAt == nil || !updated.ExpiresAt.Equal(expiresAt) {
		t.Fatal("expiry not set")
	}

	cleared, err := svc.UpdateLink(context.Background(), 1, link.LinkID, UpdateLinkInput{ClearExpiry: true})
	if err != nil {
		t.Fatal(err)
	}
	if cleared.ExpiresAt != nil {
		t.Fatal("expiry not cleared")
	}
}

// TestDeleteLink tests owner delete and its error paths.
func TestDeleteLink(t *testing.T) {
	store := newFakeLinkStore()
	svc := NewLinkService(store)

	link, err := svc.CreateLink(context.Background(), 1, CreateLinkInput{
		FileName:   "report.pdf",
		ObjectName: "obj-1",
		URL:        "https://example.com/doc",
	})
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.DeleteLink(context.Background(), 2, link.LinkID)
	if !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expect ErrNotOwner, got %v", err)
	}

	deleted, err := svc.DeleteLink(context.Background(), 1, link.LinkID)
	if err != nil {
		t.Fatalf("DeleteLink failed: %v", err)
	}
	if deleted.ObjectName != "obj-1" {
		t.Fatalf("expect backing object name on the deleted row, got %q", deleted.ObjectName)
	}

	if _, err := store.FindByLinkID(context.Background(), link.LinkID); err == nil {
		t.Fatal("deleted link still found")
	}
	if _, err := svc.DeleteLink(context.Background(), 1, link.LinkID); !errors.Is(err, ErrLinkNotFound) {
		t.Fatalf("expect ErrLinkNotFound on double delete, got %v", err)
	}
}
