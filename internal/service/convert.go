package service

import (
	"github.com/mmynk/tabsplit/internal/calculator"
	"github.com/mmynk/tabsplit/internal/models"
	"github.com/mmynk/tabsplit/internal/rpc"
)

func toModelItems(items []rpc.LineItem) []models.LineItem {
	out := make([]models.LineItem, len(items))
	for i, item := range items {
		mods := make([]models.Modifier, len(item.Modifiers))
		for j, m := range item.Modifiers {
			mods[j] = models.Modifier{ID: m.ID, Name: m.Name, Price: m.Price}
		}
		out[i] = models.LineItem{
			ID:           item.ID,
			MenuItemID:   item.MenuItemID,
			MenuItemName: item.MenuItemName,
			UnitPrice:    item.UnitPrice,
			Quantity:     item.Quantity,
			Modifiers:    mods,
			Notes:        item.Notes,
		}
	}
	return out
}

func toCalculatorItems(items []models.LineItem) []calculator.LineItem {
	out := make([]calculator.LineItem, len(items))
	for i, item := range items {
		mods := make([]calculator.Modifier, len(item.Modifiers))
		for j, m := range item.Modifiers {
			mods[j] = calculator.Modifier{ID: m.ID, Name: m.Name, Price: m.Price}
		}
		out[i] = calculator.LineItem{
			ID:           item.ID,
			MenuItemID:   item.MenuItemID,
			MenuItemName: item.MenuItemName,
			UnitPrice:    item.UnitPrice,
			Quantity:     item.Quantity,
			Modifiers:    mods,
			Notes:        item.Notes,
		}
	}
	return out
}

func toProtoOrder(order *models.Order) *rpc.Order {
	items := make([]rpc.LineItem, len(order.Items))
	for i, item := range order.Items {
		var mods []rpc.Modifier
		for _, m := range item.Modifiers {
			mods = append(mods, rpc.Modifier{ID: m.ID, Name: m.Name, Price: m.Price})
		}
		items[i] = rpc.LineItem{
			ID:           item.ID,
			MenuItemID:   item.MenuItemID,
			MenuItemName: item.MenuItemName,
			UnitPrice:    item.UnitPrice,
			Quantity:     item.Quantity,
			Modifiers:    mods,
			Notes:        item.Notes,
			LineTotal:    item.LineTotal(),
		}
	}
	return &rpc.Order{
		ID:         order.ID,
		TableLabel: order.TableLabel,
		Items:      items,
		Subtotal:   order.Subtotal,
		Tax:        order.Tax,
		Tip:        order.Tip,
		Total:      order.Subtotal + order.Tax + order.Tip,
		Status:     string(order.Status),
		CreatedBy:  order.CreatedBy,
		CreatedAt:  order.CreatedAt,
	}
}

func toPayments(result calculator.Result, userID string) []models.Payment {
	payments := make([]models.Payment, len(result.Participants))
	for i, p := range result.Participants {
		payments[i] = models.Payment{
			PersonID:   p.PersonID,
			PersonName: p.PersonName,
			Amount:     p.Amount,
			Tax:        p.Tax,
			Tip:        p.Tip,
			Method:     string(result.Method),
			Status:     models.PaymentPending,
			CreatedBy:  userID,
		}
	}
	return payments
}

func toProtoPayments(payments []models.Payment) []rpc.Payment {
	out := make([]rpc.Payment, len(payments))
	for i, p := range payments {
		out[i] = rpc.Payment{
			ID:         p.ID,
			OrderID:    p.OrderID,
			PersonID:   p.PersonID,
			PersonName: p.PersonName,
			Amount:     p.Amount,
			Tax:        p.Tax,
			Tip:        p.Tip,
			Total:      p.Total(),
			Method:     p.Method,
			Status:     string(p.Status),
			CreatedBy:  p.CreatedBy,
			CreatedAt:  p.CreatedAt,
		}
	}
	return out
}

func toProtoUser(user *models.User) *rpc.User {
	return &rpc.User{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreatedAt:   user.CreatedAt,
	}
}
