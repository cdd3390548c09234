package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/nightowlmedia/doorman/internal/gate/domain"
	"github.com/nightowlmedia/doorman/internal/gate/store"
	"github.com/nightowlmedia/doorman/pkg/idx"
	"github.com/nightowlmedia/doorman/pkg/slogx"
)

var (
	ErrEmptyTitle          = errors.New("ticket title must not be empty")
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrInvalidTicketStatus = errors.New("status must be approved or rejected")
	ErrTicketResolved      = errors.New("ticket has already been resolved")
)

type TicketService struct {
	Store store.Store
}

// Create submits a new content request on behalf of userID.
func (s *TicketService) Create(ctx context.Context, userID, title, description string) (domain.Ticket, error) {
	log := slogx.FromContext(ctx)

	title = strings.TrimSpace(title)
	if title == "" {
		return domain.Ticket{}, ErrEmptyTitle
	}

	ticket := domain.Ticket{
		ID:          idx.New().String(),
		Title:       title,
		Description: strings.TrimSpace(description),
		Status:      domain.TicketPending,
		CreatedBy:   userID,
	}
	if err := s.Store.Tickets().CreateTicket(ctx, ticket); err != nil {
		log.Error("failed to create ticket", slog.Any("error", err))
		return domain.Ticket{}, err
	}

	log.Info("ticket created",
		slog.String("ticket_id", ticket.ID),
		slog.String("created_by", userID),
	)
	return ticket, nil
}

// ListMine returns the user's own tickets, newest first.
func (s *TicketService) ListMine(ctx context.Context, userID string) ([]domain.Ticket, error) {
	tickets, err := s.Store.Tickets().ListTicketsByCreator(ctx, userID)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list tickets", slog.Any("error", err))
		return nil, err
	}
	return tickets, nil
}

// ListAll returns every ticket in the system. Admin only; the HTTP layer
// enforces that.
func (s *TicketService) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	tickets, err := s.Store.Tickets().ListTickets(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list all tickets", slog.Any("error", err))
		return nil, err
	}
	return tickets, nil
}

// Respond resolves a pending ticket. Resolution is final: a second
// response to the same ticket returns ErrTicketResolved no matter which
// status it carries.
func (s *TicketService) Respond(
	ctx context.Context,
	adminID string,
	ticketID string,
	status domain.TicketStatus,
	response string,
) (domain.Ticket, error) {
	log := slogx.FromContext(ctx)

	// 1. Only terminal statuses are valid responses.
	if !status.IsResolution() {
		return domain.Ticket{}, ErrInvalidTicketStatus
	}

	// 2. The conditional update in the store arbitrates concurrent
	// responses; exactly one wins.
	err := s.Store.Tickets().ResolveTicket(ctx, ticketID, status, strings.TrimSpace(response), adminID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return domain.Ticket{}, ErrTicketNotFound
		case errors.Is(err, store.ErrConflict):
			log.Warn("response to already resolved ticket",
				slog.String("ticket_id", ticketID),
				slog.String("responded_by", adminID),
			)
			return domain.Ticket{}, ErrTicketResolved
		}
		log.Error("failed to resolve ticket", slog.Any("error", err))
		return domain.Ticket{}, err
	}

	ticket, err := s.Store.Tickets().GetTicketByID(ctx, ticketID)
	if err != nil {
		log.Error("failed to fetch resolved ticket", slog.Any("error", err))
		return domain.Ticket{}, err
	}

	log.Info("ticket resolved",
		slog.String("ticket_id", ticket.ID),
		slog.String("status", string(ticket.Status)),
		slog.String("responded_by", adminID),
	)
	return ticket, nil
}
