package alert

import (
	"context"
	"time"

	"fundscontroller/core"

	"github.com/fox-one/pkg/logger"
	"github.com/go-resty/resty/v2"
)

// New slack webhook alerter. Delivery is best effort: failures are
// logged and swallowed, the caller's error flow never depends on the
// alert landing.
func New(webhook string) core.Alerter {
	return &slackAlerter{
		client:  resty.New().SetTimeout(10 * time.Second),
		webhook: webhook,
	}
}

// Nop alerter for setups without a webhook configured
func Nop() core.Alerter {
	return &slackAlerter{}
}

type slackAlerter struct {
	client  *resty.Client
	webhook string
}

func (a *slackAlerter) Send(ctx context.Context, message string) {
	if a.webhook == "" {
		return
	}

	log := logger.FromContext(ctx).WithField("service", "alert")
	resp, err := a.client.R().
		SetContext(ctx).
		SetBody(map[string]string{"text": message}).
		Post(a.webhook)
	if err != nil {
		log.WithError(err).Errorln("send alert failed")
		return
	}
	if resp.IsError() {
		log.Errorln("send alert failed:", resp.Status())
	}
}
