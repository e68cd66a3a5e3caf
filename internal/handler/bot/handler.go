package bot

import (
	"context"
	"errors"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"salary-admin/internal/app"
	"salary-admin/internal/models"
	"salary-admin/internal/service"
)

const requestTimeout = 10 * time.Second

type Handler struct {
	sender   service.MessageSender
	services *app.Services
	now      func() time.Time
}

func NewHandler(sender service.MessageSender, services *app.Services) *Handler {
	return &Handler{
		sender:   sender,
		services: services,
		now:      time.Now,
	}
}

func (h *Handler) HandleUpdates(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		if update.Message == nil {
			continue
		}

		h.handleMessage(update.Message)
	}
}

func (h *Handler) handleMessage(message *tgbotapi.Message) {
	username := ""
	if message.From != nil {
		username = message.From.UserName
	}
	logrus.Infof("[%s] %s", username, message.Text)

	if !message.IsCommand() {
		h.send(message.Chat.ID, "Я понимаю только команды. Используйте /help для списка команд.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	h.handleCommand(ctx, message)
}

// currentEmployee находит сотрудника по чату; если не найден, сообщает об этом сам
func (h *Handler) currentEmployee(ctx context.Context, chatID int64) (*models.Employee, bool) {
	employee, err := h.services.Employees.GetByChatID(ctx, chatID)
	if errors.Is(err, service.ErrEmployeeNotFound) {
		logrus.WithField("chat_id", chatID).Warn("Employee not found for chat")
		h.send(chatID, "❌ Профиль не найден.\nПопросите администратора добавить вас, ваш chat id: "+formatChatID(chatID))
		return nil, false
	}
	if err != nil {
		h.replyError(chatID, err)
		return nil, false
	}
	return employee, true
}

func (h *Handler) send(chatID int64, text string) {
	if err := h.sender.SendText(chatID, text); err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to send message")
	}
}

// replyError переводит ошибку сервиса в сообщение пользователю
func (h *Handler) replyError(chatID int64, err error) {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		h.send(chatID, "❌ Некорректные данные: "+validationErr.Error())
	case errors.Is(err, service.ErrPermissionDenied):
		h.send(chatID, "❌ Доступ запрещен.")
	case errors.Is(err, service.ErrEmployeeNotFound):
		h.send(chatID, "❌ Сотрудник не найден.")
	case errors.Is(err, service.ErrOffDayNotFound):
		h.send(chatID, "❌ Заявка на отгул не найдена.")
	case errors.Is(err, service.ErrAdvanceNotFound):
		h.send(chatID, "❌ Заявка на аванс не найдена.")
	case errors.Is(err, service.ErrAlreadyProcessed):
		h.send(chatID, "❌ Заявка уже обработана.")
	default:
		logrus.WithError(err).WithField("chat_id", chatID).Error("Command failed")
		h.send(chatID, "❌ Внутренняя ошибка, попробуйте позже.")
	}
}
