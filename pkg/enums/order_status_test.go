package enums

import "testing"

func TestOrderStatusForwardProgression(t *testing.T) {
	steps := []struct {
		from OrderStatus
		to   OrderStatus
	}{
		{OrderStatusSubmitted, OrderStatusApproved},
		{OrderStatusApproved, OrderStatusInProduction},
		{OrderStatusInProduction, OrderStatusShipped},
		{OrderStatusShipped, OrderStatusCompleted},
	}
	for _, step := range steps {
		if !step.from.CanTransitionTo(step.to) {
			t.Fatalf("expected %s -> %s to be allowed", step.from, step.to)
		}
	}
}

func TestOrderStatusSkippingStatesDisallowed(t *testing.T) {
	if OrderStatusSubmitted.CanTransitionTo(OrderStatusShipped) {
		t.Fatal("SUBMITTED must not jump straight to SHIPPED")
	}
	if OrderStatusApproved.CanTransitionTo(OrderStatusSubmitted) {
		t.Fatal("backward transitions must be rejected")
	}
}

func TestOrderStatusCancelFromAnyNonTerminal(t *testing.T) {
	for _, status := range []OrderStatus{OrderStatusDraft, OrderStatusSubmitted, OrderStatusApproved, OrderStatusInProduction, OrderStatusShipped} {
		if !status.CanTransitionTo(OrderStatusCancelled) {
			t.Fatalf("expected %s to be cancellable", status)
		}
	}
}

func TestOrderStatusTerminalStatesAreFrozen(t *testing.T) {
	for _, status := range []OrderStatus{OrderStatusCompleted, OrderStatusCancelled} {
		if !status.IsTerminal() {
			t.Fatalf("expected %s to be terminal", status)
		}
		if status.CanTransitionTo(OrderStatusCancelled) {
			t.Fatalf("terminal %s must not transition", status)
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	if _, err := ParseOrderStatus("SUBMITTED"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseOrderStatus("submitted"); err == nil {
		t.Fatal("expected lowercase value to be rejected")
	}
}
