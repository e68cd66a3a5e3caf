package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"salary-admin/internal/models"
)

// Notifier доставляет сообщение сотруднику
type Notifier interface {
	Notify(ctx context.Context, employee *models.Employee, text string) error
}

// MessageSender - минимальный интерфейс телеграм-клиента
type MessageSender interface {
	SendText(chatID int64, text string) error
}

// TelegramNotifier пишет сотруднику в его телеграм-чат
type TelegramNotifier struct {
	sender MessageSender
}

func NewTelegramNotifier(sender MessageSender) *TelegramNotifier {
	return &TelegramNotifier{sender: sender}
}

func (n *TelegramNotifier) Notify(_ context.Context, employee *models.Employee, text string) error {
	if employee.ChatID == 0 {
		return fmt.Errorf("employee %d has no telegram chat", employee.ID)
	}
	return n.sender.SendText(employee.ChatID, text)
}

// LogNotifier только пишет сообщение в лог
type LogNotifier struct {
	logger *logrus.Logger
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{logger: newLogger()}
}

func (n *LogNotifier) Notify(_ context.Context, employee *models.Employee, text string) error {
	n.logger.WithFields(logrus.Fields{
		"employee_id": employee.ID,
		"phone_no":    employee.PhoneNo,
	}).Info(text)
	return nil
}

type NotificationService struct {
	notifier  Notifier
	employees employeeGetter
	logger    *logrus.Logger
}

func NewNotificationService(notifier Notifier, employees employeeGetter) *NotificationService {
	return &NotificationService{
		notifier:  notifier,
		employees: employees,
		logger:    newLogger(),
	}
}

// SendAdvanceDecision сообщает сотруднику о решении по авансу.
// Ошибки доставки только логируются.
func (s *NotificationService) SendAdvanceDecision(ctx context.Context, advance *models.Advance) {
	employee, err := loadEmployee(ctx, s.employees, advance.EmployeeID)
	if err != nil {
		s.logger.WithError(err).WithField("advance_id", advance.ID).Warn("Cannot notify about advance decision")
		return
	}

	text := fmt.Sprintf("Your salary advance %s for %s was %s.", advance.PIN, advance.Amount.StringFixed(2), advance.Status)
	if advance.Notes != "" {
		text += "\nNotes: " + advance.Notes
	}

	s.deliver(ctx, employee, text)
}

// SendOffDayDecision сообщает сотруднику о решении по отгулу
func (s *NotificationService) SendOffDayDecision(ctx context.Context, employee *models.Employee, offDay *models.OffDay) {
	if employee == nil {
		return
	}

	text := fmt.Sprintf("Your off day request from %s (%d day(s), %s) was %s.",
		offDay.Date.Format("02.01.2006"), offDay.DayCount, offDay.OffType, offDay.Status)

	s.deliver(ctx, employee, text)
}

// SendPendingAdvancesSummary отправляет администратору список ожидающих авансов
func (s *NotificationService) SendPendingAdvancesSummary(ctx context.Context, admin *models.Employee, pending []*models.Advance) error {
	text := FormatPendingAdvances(pending)
	if err := s.notifier.Notify(ctx, admin, text); err != nil {
		s.logger.WithError(err).WithField("admin_id", admin.ID).Error("Failed to send pending advances summary")
		return fmt.Errorf("send pending advances summary: %w", err)
	}
	return nil
}

func (s *NotificationService) deliver(ctx context.Context, employee *models.Employee, text string) {
	if err := s.notifier.Notify(ctx, employee, text); err != nil {
		s.logger.WithError(err).WithField("employee_id", employee.ID).Warn("Notification delivery failed")
	}
}

// FormatPendingAdvances форматирует список ожидающих авансов для отображения
func FormatPendingAdvances(pending []*models.Advance) string {
	if len(pending) == 0 {
		return "No pending salary advances."
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("Pending salary advances: %d", len(pending)))
	lines = append(lines, "")
	for _, advance := range pending {
		lines = append(lines, fmt.Sprintf("#%d %s - %s: %s (%s)",
			advance.ID,
			advance.PIN,
			advance.Employee.FullName(),
			advance.Amount.StringFixed(2),
			advance.RequestDate.Format("02.01.2006"),
		))
	}

	return strings.Join(lines, "\n")
}
