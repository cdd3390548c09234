package http

import (
	"github.com/nightowlmedia/doorman/internal/gate/domain"
	"github.com/nightowlmedia/doorman/pkg/gatesdk"
)

func toUserInfo(u domain.User) gatesdk.UserInfo {
	return gatesdk.UserInfo{
		ID:          u.ID,
		Username:    u.Username,
		IsAdmin:     u.IsAdmin,
		InviteCount: u.InviteCount,
		InvitedBy:   u.InvitedBy,
		CreatedAt:   u.CreatedAt,
	}
}

func toInviteInfo(inv domain.Invite) gatesdk.InviteInfo {
	return gatesdk.InviteInfo{
		Code:      inv.Code,
		CreatedBy: inv.CreatedBy,
		Used:      inv.Used,
		UsedBy:    inv.UsedBy,
		CreatedAt: inv.CreatedAt,
	}
}

func toTicketInfo(t domain.Ticket) gatesdk.TicketInfo {
	return gatesdk.TicketInfo{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedBy:   t.CreatedBy,
		Response:    t.Response,
		RespondedBy: t.RespondedBy,
		CreatedAt:   t.CreatedAt,
		ResolvedAt:  t.ResolvedAt,
	}
}

func toTicketInfos(tickets []domain.Ticket) []gatesdk.TicketInfo {
	out := make([]gatesdk.TicketInfo, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, toTicketInfo(t))
	}
	return out
}

func toInviteInfos(invites []domain.Invite) []gatesdk.InviteInfo {
	out := make([]gatesdk.InviteInfo, 0, len(invites))
	for _, inv := range invites {
		out = append(out, toInviteInfo(inv))
	}
	return out
}
