package purchase

import (
	"context"
	"fmt"

	"github.com/ahinestrog/mybookstore-checkout/internal/cart"
	"github.com/ahinestrog/mybookstore-checkout/internal/events"
)

// CompletePurchase runs search, cart, pricing, payment and inventory in order.
// Any failure is returned as Result.Error and leaves the cart as it was.
func (s *Store) CompletePurchase(ctx context.Context, req Request) Result {
	order, err := s.checkout(ctx, req)
	if err != nil {
		s.log.Warn().Err(err).Str("stage", string(StageFailed)).
			Str("query", req.Query).Int64("book", req.BookID).Int("qty", req.Quantity).
			Msg("purchase failed")
		s.publish(ctx, events.RKPurchaseFailed, events.PurchaseFailed{
			Query: req.Query, BookID: req.BookID, Qty: req.Quantity, Reason: err.Error(),
		})
		return Result{Error: err.Error()}
	}
	return Result{Order: order}
}

func (s *Store) checkout(ctx context.Context, req Request) (*Order, error) {
	s.stage(StageSearching)
	found, err := s.SearchBooks(ctx, req.Query)
	if err != nil { return nil, err }
	if len(found) == 0 { return nil, ErrNoResults }

	s.stage(StageCartUpdate)
	lines, err := s.AddToCart(ctx, req.BookID, req.Quantity)
	if err != nil { return nil, err }

	s.stage(StagePricing)
	total := s.CalculateTotal(lines)
	if req.CouponCode != "" {
		total = s.ApplyDiscount(total, req.CouponCode)
	}

	s.stage(StagePaying)
	pay := s.ProcessPayment(ctx, total, req.PaymentMethod)
	if !pay.Success { return nil, ErrPaymentFailed }

	s.stage(StageInventoryUpdate)
	if _, err := s.UpdateInventory(ctx, lines); err != nil { return nil, err }

	alerts := LowStockAlerts(lines, s.cfg.LowStockThreshold)
	s.cart.Clear()

	order := &Order{
		OrderID:        pay.TransactionID,
		Items:          lines,
		Total:          total,
		PaymentMethod:  req.PaymentMethod,
		Message:        SuccessMessage,
		LowStockAlerts: alerts,
	}
	s.log.Info().Str("stage", string(StageCompleted)).Str("order", order.OrderID).
		Float64("total", order.Total).Int("lines", len(lines)).Msg("purchase completed")
	s.publishCompleted(ctx, order, req.CouponCode)
	return order, nil
}

// LowStockAlerts reports lines whose recorded stock is at or below threshold.
// The stock is the one captured when the line entered the cart, before this
// purchase decremented it.
func LowStockAlerts(lines []cart.Item, threshold int) []string {
	alerts := make([]string, 0)
	for _, it := range lines {
		if it.Stock <= threshold {
			alerts = append(alerts, lowStockMessage(it))
		}
	}
	return alerts
}

func lowStockMessage(it cart.Item) string {
	return fmt.Sprintf("%s stock is low (%d left)", it.Title, it.Stock)
}

func (s *Store) stage(st Stage) { s.log.Debug().Str("stage", string(st)).Msg("purchase step") }

func (s *Store) publishCompleted(ctx context.Context, o *Order, coupon string) {
	items := make([]events.ItemEvt, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, events.ItemEvt{BookID: it.ID, Title: it.Title, Qty: it.Quantity, UnitPrice: it.Price})
	}
	s.publish(ctx, events.RKPurchaseCompleted, events.PurchaseCompleted{
		OrderID: o.OrderID, Items: items, Total: o.Total, PaymentMethod: o.PaymentMethod, CouponCode: coupon,
	})
	for _, it := range o.Items {
		if it.Stock > s.cfg.LowStockThreshold { continue }
		s.publish(ctx, events.RKStockLow, events.StockLow{
			BookID: it.ID, Title: it.Title, Stock: it.Stock, Message: lowStockMessage(it),
		})
	}
}

func (s *Store) publish(ctx context.Context, key string, payload any) {
	if s.events == nil { return }
	body, err := events.Encode(key, payload)
	if err != nil {
		s.log.Error().Err(err).Str("key", key).Msg("encode event")
		return
	}
	if err := s.events.Publish(ctx, key, body); err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("publish event failed")
	}
}
