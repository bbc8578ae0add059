// Package notifier publishes high-risk vehicles to an MQTT broker.
package notifier

import (
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/autopeer-io/riskboard/internal/riskboard/core"
	"github.com/autopeer-io/riskboard/internal/riskboard/core/model"
	"github.com/autopeer-io/riskboard/pkg/log"
	"github.com/autopeer-io/riskboard/pkg/mqtt"
	"github.com/autopeer-io/riskboard/pkg/mqtt/topic"
)

const (
	alertQoS = 1
	// Not retained: nothing clears an alert once the vehicle leaves High.
	alertRetain = false
)

// HighRiskAlert is the payload published per high-risk vehicle.
type HighRiskAlert struct {
	VehicleID      int64            `json:"vehicle_id"`
	VIN            string           `json:"vin"`
	VehicleModel   string           `json:"vehicle_model"`
	ModelYear      int              `json:"model_year"`
	DealershipName string           `json:"dealership_name"`
	Region         string           `json:"region"`
	ScoringModel   string           `json:"scoring_model"`
	RiskScore      float64          `json:"risk_score"`
	RiskBucket     model.RiskBucket `json:"risk_bucket"`
	PublishedAt    time.Time        `json:"published_at"`
}

// MQTTNotifier implements core.AlertNotifier on top of an MQTT publisher.
type MQTTNotifier struct {
	publisher mqtt.Publisher
	topics    *topic.Builder
	now       func() time.Time
}

var _ core.AlertNotifier = (*MQTTNotifier)(nil)

// NewMQTTNotifier publishes under the given topic root.
func NewMQTTNotifier(p mqtt.Publisher, topicRoot string) *MQTTNotifier {
	return &MQTTNotifier{
		publisher: p,
		topics:    topic.NewBuilder(topicRoot),
		now:       time.Now,
	}
}

// NotifyHighRisk publishes one message per high-risk vehicle.
// Vehicles outside the High bucket are skipped.
func (n *MQTTNotifier) NotifyHighRisk(ctx context.Context, modelName string, vehicles []model.VehicleSummary) error {
	var errs []error
	published := 0

	for _, v := range vehicles {
		if !v.RiskBucket.IsHigh() {
			continue
		}

		payload, err := jsoniter.Marshal(HighRiskAlert{
			VehicleID:      v.ID,
			VIN:            v.VIN,
			VehicleModel:   v.Model,
			ModelYear:      v.ModelYear,
			DealershipName: v.DealershipName,
			Region:         v.Region,
			ScoringModel:   modelName,
			RiskScore:      v.RiskScore,
			RiskBucket:     v.RiskBucket,
			PublishedAt:    n.now().UTC(),
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("marshal alert for %s: %w", v.VIN, err))
			continue
		}

		if err := n.publisher.Publish(ctx, n.topics.HighRisk(v.VIN), alertQoS, alertRetain, payload); err != nil {
			errs = append(errs, fmt.Errorf("publish alert for %s: %w", v.VIN, err))
			continue
		}
		published++
	}

	log.Debug("Published high-risk alerts", "model", modelName, "count", published)
	return errors.Join(errs...)
}

// Nop discards alerts. It is used when the alert feed is disabled.
type Nop struct{}

var _ core.AlertNotifier = Nop{}

func (Nop) NotifyHighRisk(context.Context, string, []model.VehicleSummary) error { return nil }
