package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/marketjoys/AutomatedResponder/internal/model"
	"github.com/marketjoys/AutomatedResponder/internal/provider"
	"github.com/marketjoys/AutomatedResponder/internal/queue"
	"github.com/marketjoys/AutomatedResponder/internal/repository"
)

// Dispatcher executes campaign send runs in the background. One run walks
// its audience strictly in order, spacing sends by SendDelay; sends across
// all runs share a single pacer.
type Dispatcher struct {
	CampaignRepo repository.CampaignRepositoryInterface
	ProspectRepo repository.ProspectRepositoryInterface
	MessageRepo  repository.EmailMessageRepositoryInterface
	Providers    provider.DefaultSource
	Tasks        *queue.TaskQueue
	Log          *zap.Logger

	SendDelay time.Duration

	pacerOnce sync.Once
	limiter   *rate.Limiter
}

// Dispatch enqueues a background run for the campaign. The returned handle
// reports when the run has finished.
func (d *Dispatcher) Dispatch(campaign *model.Campaign, template *model.Template, audience []*model.Prospect) (*queue.Handle, error) {
	return d.Tasks.Enqueue(queue.Task{
		Name: "campaign_send:" + campaign.ID,
		Run: func() {
			d.process(campaign, template, audience)
		},
	})
}

func (d *Dispatcher) pacer() *rate.Limiter {
	d.pacerOnce.Do(func() {
		delay := d.SendDelay
		if delay <= 0 {
			delay = 100 * time.Millisecond
		}
		d.limiter = rate.NewLimiter(rate.Every(delay), 1)
	})
	return d.limiter
}

func (d *Dispatcher) process(campaign *model.Campaign, template *model.Template, audience []*model.Prospect) {
	log := d.Log.With(zap.String("campaign_id", campaign.ID))

	sender, err := d.Providers.Default()
	if err != nil {
		log.Error("no default provider, aborting run", zap.Error(err))
		return
	}

	// Runs are never cancelled once started; shutdown waits for them, so
	// the pacer gets a background context rather than a request-scoped one.
	ctx := context.Background()
	pacer := d.pacer()

	sent, failed := 0, 0
	for _, prospect := range audience {
		if err := pacer.Wait(ctx); err != nil {
			log.Error("pacer wait", zap.Error(err))
		}

		if d.deliverOne(ctx, sender, campaign, template, prospect) {
			sent++
		} else {
			failed++
		}
	}

	if err := d.CampaignRepo.MarkCompleted(campaign.ID); err != nil {
		log.Error("mark campaign completed", zap.Error(err))
	}

	log.Info("campaign run finished",
		zap.String("provider", sender.Name()),
		zap.Int("sent", sent),
		zap.Int("failed", failed),
		zap.Int("total", len(audience)),
	)
}

// deliverOne renders and sends a single email and records the outcome. Any
// failure, including a panicking sender, stays contained to this recipient.
func (d *Dispatcher) deliverOne(ctx context.Context, sender provider.Sender, campaign *model.Campaign, template *model.Template, prospect *model.Prospect) (delivered bool) {
	log := d.Log.With(
		zap.String("campaign_id", campaign.ID),
		zap.String("prospect_id", prospect.ID),
		zap.String("email", prospect.Email),
	)

	defer func() {
		if r := recover(); r != nil {
			log.Error("send panicked", zap.Any("panic", r))
			delivered = false
		}
	}()

	data := prospect.RenderContext()
	subject := RenderTemplate(template.Subject, data)
	content := RenderTemplate(template.Content, data)

	msg := &model.EmailMessage{
		ProspectID: prospect.ID,
		CampaignID: campaign.ID,
		Subject:    subject,
		Content:    content,
	}

	if err := sender.Send(ctx, prospect.Email, subject, content); err != nil {
		log.Warn("send failed", zap.Error(err))
		msg.Status = model.MessageStatusFailed
	} else {
		now := time.Now().UTC()
		msg.Status = model.MessageStatusSent
		msg.SentAt = &now
		delivered = true
	}

	if err := d.MessageRepo.Create(msg); err != nil {
		log.Error("record outcome", zap.Error(err))
		return false
	}

	// Last contact moves on failed sends too; the attempt is what counts.
	if err := d.ProspectRepo.UpdateLastContacted(prospect.ID, time.Now().UTC()); err != nil {
		log.Warn("update last contact", zap.Error(err))
		return false
	}

	return delivered
}
