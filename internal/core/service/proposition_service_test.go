package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/persoshop/persoshop-api/internal/core/domain"
	"github.com/persoshop/persoshop-api/internal/core/ports"
)

type propositionFixture struct {
	svc          *PropositionService
	propositions *stubPropositionRepo
	users        *stubUserRepo
	images       *stubImageStore
	notifier     *stubNotifier
}

func newPropositionFixture(t *testing.T) *propositionFixture {
	t.Helper()
	users := newStubUserRepo()
	if _, err := users.Create(context.Background(), &domain.User{
		ID: "admin-1", Email: "lilia@persoshop.com", Role: domain.RoleAdmin, FullName: "Lilia",
	}); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	if _, err := users.Create(context.Background(), &domain.User{
		ID: "client-1", Email: "alice@example.com", Role: domain.RoleClient, FullName: "Alice Martin",
	}); err != nil {
		t.Fatalf("seed client: %v", err)
	}

	propositions := newStubPropositionRepo()
	images := newStubImageStore()
	notifier := &stubNotifier{}
	svc := NewPropositionService(propositions, users, images, notifier, zerolog.Nop())
	return &propositionFixture{svc: svc, propositions: propositions, users: users, images: images, notifier: notifier}
}

func validPropositionInput() ports.CreatePropositionInput {
	return ports.CreatePropositionInput{
		AdminRole:    domain.RoleAdmin,
		UserID:       "client-1",
		ProductName:  "Robe Sandro",
		ProductPrice: "189 EUR",
		ProductURL:   "https://shop.example.com/robe-sandro",
		Image:        ports.ImageBlob{Data: []byte("jpeg"), ContentType: "image/jpeg"},
	}
}

func TestPropositionService_Create_AdminOnly(t *testing.T) {
	f := newPropositionFixture(t)

	input := validPropositionInput()
	input.AdminRole = domain.RoleClient
	if _, err := f.svc.Create(context.Background(), input); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestPropositionService_Create_StartsPendingAndNotifiesClient(t *testing.T) {
	f := newPropositionFixture(t)

	p, err := f.svc.Create(context.Background(), validPropositionInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if p.Status != domain.PropositionPending {
		t.Fatalf("expected EN_ATTENTE, got %s", p.Status)
	}
	if p.AdminID != "admin-1" {
		t.Fatalf("expected issuing admin recorded, got %q", p.AdminID)
	}
	if p.URL == "" {
		t.Fatalf("expected hosted product image URL")
	}

	if len(f.notifier.enqueued) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(f.notifier.enqueued))
	}
	n := f.notifier.enqueued[0]
	if n.UserID != "client-1" {
		t.Fatalf("client must be notified, got recipient %q", n.UserID)
	}
	if !strings.Contains(n.Message, "Robe Sandro") {
		t.Fatalf("message should name the product: %q", n.Message)
	}
}

func TestPropositionService_Create_MissingFields(t *testing.T) {
	f := newPropositionFixture(t)

	input := validPropositionInput()
	input.ProductName = ""
	if _, err := f.svc.Create(context.Background(), input); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestPropositionService_UpdateStatus_RejectsNonResponse(t *testing.T) {
	f := newPropositionFixture(t)

	p, err := f.svc.Create(context.Background(), validPropositionInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Clients respond, they never reset to EN_ATTENTE.
	_, err = f.svc.UpdateStatus(context.Background(), ports.UpdatePropositionStatusInput{
		RequesterID:   "client-1",
		PropositionID: p.ID,
		Status:        domain.PropositionPending,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestPropositionService_UpdateStatus_OwnerOnly(t *testing.T) {
	f := newPropositionFixture(t)

	p, err := f.svc.Create(context.Background(), validPropositionInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err = f.svc.UpdateStatus(context.Background(), ports.UpdatePropositionStatusInput{
		RequesterID:   "client-2",
		PropositionID: p.ID,
		Status:        domain.PropositionRefused,
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestPropositionService_UpdateStatus_PurchaseNotifiesAdmin(t *testing.T) {
	f := newPropositionFixture(t)

	p, err := f.svc.Create(context.Background(), validPropositionInput())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	f.notifier.enqueued = nil

	updated, err := f.svc.UpdateStatus(context.Background(), ports.UpdatePropositionStatusInput{
		RequesterID:   "client-1",
		PropositionID: p.ID,
		Status:        domain.PropositionPurchased,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != domain.PropositionPurchased {
		t.Fatalf("expected ACHETE, got %s", updated.Status)
	}

	if len(f.notifier.enqueued) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(f.notifier.enqueued))
	}
	n := f.notifier.enqueued[0]
	if n.AdminID != "admin-1" {
		t.Fatalf("admin must be notified, got recipient %q", n.AdminID)
	}
	if n.Type != domain.NotifPropositionResponse {
		t.Fatalf("unexpected type %s", n.Type)
	}
	if !strings.Contains(n.Message, "a acheté") || !strings.Contains(n.Message, "Robe Sandro") {
		t.Fatalf("message should state the purchase and name the product: %q", n.Message)
	}
}

func TestPropositionService_ListForUser_Ownership(t *testing.T) {
	f := newPropositionFixture(t)

	if _, err := f.svc.ListForUser(context.Background(), domain.RoleClient, "client-2", "client-1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := f.svc.ListForUser(context.Background(), domain.RoleAdmin, "admin-1", "client-1"); err != nil {
		t.Fatalf("admin listing failed: %v", err)
	}
}
