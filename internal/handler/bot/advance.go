package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"salary-admin/internal/models"
	"salary-admin/internal/service"
)

// requestAdvance: /advance сумма причина
func (h *Handler) requestAdvance(ctx context.Context, message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	employee, ok := h.currentEmployee(ctx, chatID)
	if !ok {
		return
	}

	parts := strings.Fields(args)
	if len(parts) == 0 {
		h.send(chatID, "💰 Заявка на аванс\n\nФормат команды:\n/advance сумма причина\n\nПример:\n/advance 500 ремонт машины")
		return
	}

	amount, err := decimal.NewFromString(strings.ReplaceAll(parts[0], ",", "."))
	if err != nil {
		h.send(chatID, "❌ Неверная сумма: "+parts[0])
		return
	}

	reason := strings.Join(parts[1:], " ")
	advance, err := h.services.Advances.RequestAdvance(ctx, employee.ID, amount, reason)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	h.send(chatID, fmt.Sprintf(
		"✅ Заявка на аванс создана!\n\n🔖 PIN: %s\n💰 Сумма: %s\n⏳ Статус: на рассмотрении",
		advance.PIN, advance.Amount.StringFixed(2),
	))
}

func (h *Handler) showMyAdvances(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	employee, ok := h.currentEmployee(ctx, chatID)
	if !ok {
		return
	}

	advances, err := h.services.Advances.GetEmployeeAdvances(ctx, employee.ID)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	if len(advances) == 0 {
		h.send(chatID, "📭 У вас нет заявок на аванс.")
		return
	}

	var lines []string
	for _, advance := range advances {
		lines = append(lines, fmt.Sprintf("#%d %s: %s (%s)",
			advance.ID,
			advance.PIN,
			advance.Amount.StringFixed(2),
			statusTitle(string(advance.Status)),
		))
	}
	h.send(chatID, "💰 Ваши авансы:\n\n"+strings.Join(lines, "\n"))
}

// showPendingAdvances показывает авансы на рассмотрении (только админы)
func (h *Handler) showPendingAdvances(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	employee, ok := h.currentEmployee(ctx, chatID)
	if !ok {
		return
	}

	if !employee.Can(models.PermissionAdvanceApprove) {
		h.send(chatID, "❌ Доступ запрещен. Эта команда только для администраторов.")
		return
	}

	pending, err := h.services.Advances.GetPendingAdvances(ctx)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	h.send(chatID, service.FormatPendingAdvances(pending))
}

// decideAdvance: /approve id [комментарий], /reject id [комментарий]
func (h *Handler) decideAdvance(ctx context.Context, message *tgbotapi.Message, args string, approve bool) {
	chatID := message.Chat.ID

	employee, ok := h.currentEmployee(ctx, chatID)
	if !ok {
		return
	}

	parts := strings.Fields(args)
	if len(parts) == 0 {
		h.send(chatID, "❌ Укажите номер заявки, например: /approve 3")
		return
	}

	id, err := parseID(parts[0])
	if err != nil {
		h.send(chatID, "❌ Укажите номер заявки, например: /approve 3")
		return
	}

	advance, err := h.services.Advances.ApproveAdvance(ctx, id, employee.ID, approve, strings.Join(parts[1:], " "))
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	h.send(chatID, fmt.Sprintf("✅ Аванс %s на %s: %s",
		advance.PIN, advance.Amount.StringFixed(2), statusTitle(string(advance.Status))))
}
