package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"salary-admin/internal/models"
	"salary-admin/pkg/dates"
)

// showAttendance пересчитывает и показывает посещаемость текущего сотрудника
func (h *Handler) showAttendance(ctx context.Context, message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	employee, ok := h.currentEmployee(ctx, chatID)
	if !ok {
		return
	}

	var referenceDate time.Time
	if args != "" {
		parsed, err := dates.Parse(args, h.now())
		if err != nil {
			h.send(chatID, "❌ Ошибка парсинга даты: "+err.Error())
			return
		}
		referenceDate = parsed
	}

	employee, err := h.services.Attendance.UpdateAttendance(ctx, employee, referenceDate)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	shown := dates.DateOnly(h.now())
	if !referenceDate.IsZero() {
		shown = referenceDate
	}

	h.send(chatID, fmt.Sprintf(
		"📊 Посещаемость на %s\n\n📅 Отработано в этом месяце: %d\n🗓 Всего отработано: %d",
		shown.Format("02.01.2006"),
		employee.DaysWorkedThisMonth,
		employee.TotalDaysWorked,
	))
}

// requestOffDay: /offday ДД.ММ.ГГГГ [дней] [half]
func (h *Handler) requestOffDay(ctx context.Context, message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	employee, ok := h.currentEmployee(ctx, chatID)
	if !ok {
		return
	}

	if args == "" {
		h.send(chatID, `🌴 Заявка на отгул

Формат команды:
/offday ДД.ММ.ГГГГ [дней] [half]

Примеры:
/offday 15.07.2026 → один полный день
/offday 15.07.2026 3 → три дня с 15 июля
/offday 15.07.2026 1 half → половина дня`)
		return
	}

	parts := strings.Fields(args)
	date, err := dates.Parse(parts[0], h.now())
	if err != nil {
		h.send(chatID, "❌ Ошибка парсинга даты: "+err.Error())
		return
	}

	dayCount := 1
	offType := models.OffTypeFull
	for _, part := range parts[1:] {
		if strings.EqualFold(part, string(models.OffTypeHalf)) {
			offType = models.OffTypeHalf
			continue
		}

		count, err := strconv.Atoi(part)
		if err != nil {
			h.send(chatID, "❌ Неверный формат. Используйте: /offday ДД.ММ.ГГГГ [дней] [half]")
			return
		}
		dayCount = count
	}

	offDay, err := h.services.OffDays.RequestOffDay(ctx, employee.ID, date, dayCount, offType, "")
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	h.send(chatID, fmt.Sprintf(
		"✅ Заявка #%d создана!\n\n📅 Период: %s - %s\n📋 Тип: %s\n⏳ Статус: на рассмотрении",
		offDay.ID,
		offDay.Date.Format("02.01.2006"),
		offDay.EndDate().Format("02.01.2006"),
		offTypeTitle(offDay.OffType),
	))
}

func (h *Handler) showMyOffDays(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	employee, ok := h.currentEmployee(ctx, chatID)
	if !ok {
		return
	}

	offDays, err := h.services.OffDays.GetEmployeeOffDays(ctx, employee.ID)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	if len(offDays) == 0 {
		h.send(chatID, "📭 У вас нет заявок на отгул.")
		return
	}

	h.send(chatID, "🌴 Ваши отгулы:\n\n"+formatOffDays(offDays))
}

// showPendingOffDays показывает заявки на рассмотрении (менеджеры и админы)
func (h *Handler) showPendingOffDays(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID

	employee, ok := h.currentEmployee(ctx, chatID)
	if !ok {
		return
	}

	if !employee.Can(models.PermissionOffDayApprove) {
		h.send(chatID, "❌ Доступ запрещен. Эта команда только для руководителей.")
		return
	}

	offDays, err := h.services.OffDays.GetPendingOffDays(ctx)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	if len(offDays) == 0 {
		h.send(chatID, "📭 Нет заявок на рассмотрении.")
		return
	}

	h.send(chatID, "⏳ Отгулы на рассмотрении:\n\n"+formatOffDays(offDays))
}

func (h *Handler) reviewOffDay(ctx context.Context, message *tgbotapi.Message, args string, approve bool) {
	chatID := message.Chat.ID

	employee, ok := h.currentEmployee(ctx, chatID)
	if !ok {
		return
	}

	id, err := parseID(args)
	if err != nil {
		h.send(chatID, "❌ Укажите номер заявки, например: /approveoff 12")
		return
	}

	offDay, err := h.services.OffDays.ReviewOffDay(ctx, employee.ID, id, approve)
	if err != nil {
		h.replyError(chatID, err)
		return
	}

	h.send(chatID, fmt.Sprintf("✅ Заявка #%d: %s", offDay.ID, statusTitle(string(offDay.Status))))
}

func formatOffDays(offDays []models.OffDay) string {
	var lines []string
	for _, offDay := range offDays {
		lines = append(lines, fmt.Sprintf("#%d %s - %s, %s: %s",
			offDay.ID,
			offDay.Date.Format("02.01.2006"),
			offDay.EndDate().Format("02.01.2006"),
			offTypeTitle(offDay.OffType),
			statusTitle(string(offDay.Status)),
		))
	}
	return strings.Join(lines, "\n")
}

func offTypeTitle(offType models.OffType) string {
	if offType == models.OffTypeHalf {
		return "половина дня"
	}
	return "полный день"
}

func statusTitle(status string) string {
	switch status {
	case "approved":
		return "одобрено"
	case "rejected":
		return "отклонено"
	default:
		return "на рассмотрении"
	}
}
