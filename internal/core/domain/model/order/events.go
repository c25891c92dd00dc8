package order

import (
	"github.com/shopspring/decimal"
)

// Lifecycle event topics. At most one event is emitted per orchestrator call,
// on the transitions that downstream consumers care about.
const (
	// TopicOrderConfirmed is emitted when an order reaches Confirmed.
	TopicOrderConfirmed = "order.confirmed"

	// TopicOrderReady is emitted when an order reaches Ready.
	TopicOrderReady = "order.ready"
)

// EventTopicFor returns the topic to publish when an order has just reached
// the given status, and whether that status emits an event at all.
func EventTopicFor(status Status) (string, bool) {
	switch status {
	case Confirmed:
		return TopicOrderConfirmed, true
	case Ready:
		return TopicOrderReady, true
	default:
		return "", false
	}
}

// EventOption is the wire shape of a selected option inside an event payload.
type EventOption struct {
	Name            string          `json:"name"`
	AdditionalPrice decimal.Decimal `json:"additionalPrice"`
}

// EventItem is the wire shape of a line item inside an event payload.
type EventItem struct {
	ItemID          string          `json:"itemId"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unitPrice"`
	SelectedOptions []EventOption   `json:"selectedOptions"`
}

// Event is the payload of a lifecycle event. The same shape is used for every
// lifecycle topic; consumers distinguish transitions by topic, not by payload.
type Event struct {
	OrderID string          `json:"orderId"`
	ShopID  string          `json:"shopId"`
	UserID  *string         `json:"userId"`
	Items   []EventItem     `json:"items"`
	Total   decimal.Decimal `json:"total"`
}

// NewEvent builds the lifecycle event payload for an order.
func NewEvent(o *Order) Event {
	items := make([]EventItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		options := make([]EventOption, 0, len(item.SelectedOptions()))
		for _, option := range item.SelectedOptions() {
			options = append(options, EventOption{
				Name:            option.Name(),
				AdditionalPrice: option.AdditionalPrice().Decimal(),
			})
		}
		items = append(items, EventItem{
			ItemID:          item.ItemID(),
			Quantity:        item.Quantity(),
			UnitPrice:       item.UnitPrice().Decimal(),
			SelectedOptions: options,
		})
	}

	return Event{
		OrderID: o.ID().String(),
		ShopID:  o.ShopID(),
		UserID:  o.UserID(),
		Items:   items,
		Total:   o.Total().Decimal(),
	}
}
