package mq

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/shandysiswandi/twofa/internal/pkg/instrument"
	"github.com/shandysiswandi/twofa/internal/pkg/messaging"
	"github.com/shandysiswandi/twofa/internal/shared/event"
	"github.com/shandysiswandi/twofa/internal/twofa/usecase"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const keyOfCorrelationID string = "cID"

type Messaging struct {
	client messaging.Publisher
	ins    instrument.Instrumentation
}

func NewMessaging(client messaging.Publisher, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins}
}

func (m *Messaging) PublishTwoFAEnabled(ctx context.Context, msg usecase.TwoFAEnabledEvent) error {
	ctx, span := m.ins.Tracer("twofa.outbound.mq").Start(ctx, "PublishTwoFAEnabled")
	defer span.End()

	return m.publish(ctx, span, event.TwoFAEnabledDestination, msg.UserID, event.TwoFAEnabledMessage{
		UserID:   msg.UserID,
		Email:    msg.Email,
		Username: msg.Username,
	})
}

func (m *Messaging) PublishSessionVerified(ctx context.Context, msg usecase.SessionVerifiedEvent) error {
	ctx, span := m.ins.Tracer("twofa.outbound.mq").Start(ctx, "PublishSessionVerified")
	defer span.End()

	return m.publish(ctx, span, event.TwoFASessionVerifiedDestination, msg.UserID, event.TwoFASessionVerifiedMessage{
		UserID:    msg.UserID,
		DeviceID:  msg.DeviceID,
		Setup:     msg.Setup,
		LastLogin: msg.LastLogin,
	})
}

// publish keys every message by user id so one user's events stay ordered
// on partitioned brokers.
func (m *Messaging) publish(ctx context.Context, span trace.Span, dest string, userID int64, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	if _, err := m.client.Publish(ctx, dest, messaging.OutgoingMessage{
		Body:    body,
		Key:     []byte(strconv.FormatInt(userID, 10)),
		Headers: []messaging.Header{{Key: keyOfCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
