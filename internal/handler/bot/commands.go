package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"salary-admin/internal/models"
)

func (h *Handler) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	command := message.Command()
	args := strings.TrimSpace(message.CommandArguments())

	switch command {
	case "start":
		h.sendStartMessage(ctx, message)
	case "help":
		h.sendHelpMessage(ctx, message)

	// Посещаемость и отгулы (все сотрудники)
	case "attendance":
		h.showAttendance(ctx, message, args)
	case "offday":
		h.requestOffDay(ctx, message, args)
	case "myoffdays":
		h.showMyOffDays(ctx, message)

	// Рассмотрение отгулов (менеджеры и админы)
	case "pendingoffdays":
		h.showPendingOffDays(ctx, message)
	case "approveoff":
		h.reviewOffDay(ctx, message, args, true)
	case "rejectoff":
		h.reviewOffDay(ctx, message, args, false)

	// Авансы
	case "advance":
		h.requestAdvance(ctx, message, args)
	case "myadvances":
		h.showMyAdvances(ctx, message)
	case "pending":
		h.showPendingAdvances(ctx, message)
	case "approve":
		h.decideAdvance(ctx, message, args, true)
	case "reject":
		h.decideAdvance(ctx, message, args, false)

	default:
		h.send(message.Chat.ID, "❌ Неизвестная команда. Используйте /help для списка команд.")
	}
}

func (h *Handler) sendStartMessage(ctx context.Context, message *tgbotapi.Message) {
	employee, ok := h.currentEmployee(ctx, message.Chat.ID)
	if !ok {
		return
	}

	h.send(message.Chat.ID, fmt.Sprintf(
		"👋 Здравствуйте, %s!\nВаша роль: %s\n\nИспользуйте /help для списка команд.",
		employee.FullName(), employee.Role,
	))
}

func (h *Handler) sendHelpMessage(ctx context.Context, message *tgbotapi.Message) {
	text := `📋 Доступные команды:

/attendance [ДД.ММ.ГГГГ] - отработанные дни
/offday ДД.ММ.ГГГГ [дней] [half] - заявка на отгул
/myoffdays - мои отгулы
/advance сумма причина - заявка на аванс
/myadvances - мои авансы`

	employee, err := h.services.Employees.GetByChatID(ctx, message.Chat.ID)
	if err == nil && employee.Can(models.PermissionOffDayApprove) {
		text += `

👔 Для руководителей:
/pendingoffdays - отгулы на рассмотрении
/approveoff id - одобрить отгул
/rejectoff id - отклонить отгул`
	}
	if err == nil && employee.Can(models.PermissionAdvanceApprove) {
		text += `

👑 Для администраторов:
/pending - авансы на рассмотрении
/approve id - одобрить аванс
/reject id - отклонить аванс`
	}

	h.send(message.Chat.ID, text)
}

func parseID(args string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(args), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", args)
	}
	return uint(id), nil
}

func formatChatID(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}
