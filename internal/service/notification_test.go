package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salary-admin/internal/models"
)

type fakeSender struct {
	chatIDs []int64
	texts   []string
	err     error
}

func (s *fakeSender) SendText(chatID int64, text string) error {
	if s.err != nil {
		return s.err
	}
	s.chatIDs = append(s.chatIDs, chatID)
	s.texts = append(s.texts, text)
	return nil
}

func TestTelegramNotifier(t *testing.T) {
	sender := &fakeSender{}
	notifier := NewTelegramNotifier(sender)
	ctx := context.Background()

	require.NoError(t, notifier.Notify(ctx, &models.Employee{ID: 1, ChatID: 77}, "hello"))
	assert.Equal(t, []int64{77}, sender.chatIDs)
	assert.Equal(t, []string{"hello"}, sender.texts)

	err := notifier.Notify(ctx, &models.Employee{ID: 2}, "hello")
	assert.Error(t, err)
	assert.Len(t, sender.texts, 1)

	sender.err = errors.New("telegram is down")
	assert.ErrorIs(t, notifier.Notify(ctx, &models.Employee{ID: 1, ChatID: 77}, "hello"), sender.err)
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, NewLogNotifier().Notify(context.Background(), &models.Employee{ID: 1}, "hello"))
}

func TestSendOffDayDecision(t *testing.T) {
	env := newTestEnv(t)
	employee := env.employee(t, "John", models.RoleStaff)

	env.notifications().SendOffDayDecision(context.Background(), employee, &models.OffDay{
		Date:     date(2024, 1, 3),
		DayCount: 2,
		OffType:  models.OffTypeFull,
		Status:   models.OffDayStatusApproved,
	})

	require.Len(t, env.notifier.sent, 1)
	assert.Equal(t, employee.ID, env.notifier.sent[0].employeeID)
	assert.Equal(t, "Your off day request from 03.01.2024 (2 day(s), full) was approved.", env.notifier.sent[0].text)
}
