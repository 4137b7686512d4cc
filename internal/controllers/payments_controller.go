// internal/controllers/payments_controller.go
package controllers

import (
	"context"
	"fmt"
	"io"

	"github.com/hostelworks/hostel-console/internal/dtos"
	"github.com/hostelworks/hostel-console/internal/models"
	"github.com/hostelworks/hostel-console/internal/services"
	"github.com/hostelworks/hostel-console/internal/utils"
)

func (c *Console) ListPayments(ctx context.Context) error {
	if _, err := c.requireSession(); err != nil {
		return err
	}
	p, err := page(ctx, c.payments.Load)
	if err != nil {
		return err
	}
	return c.print(func(w io.Writer) error { return renderPayments(w, p) })
}

func (c *Console) CreatePayment(ctx context.Context, form dtos.PaymentForm) error {
	if _, err := c.requireSession(); err != nil {
		return err
	}
	payment, err := c.payments.Create(ctx, form)
	if err != nil {
		return err
	}
	return c.print(func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Payment of %s recorded for member %d\n", money(payment.Amount), payment.MemberID)
		return err
	})
}

func renderPayments(w io.Writer, p *services.PaymentsPage) error {
	if p.Degraded {
		if _, err := fmt.Fprintln(w, "Payments could not be loaded right now; the list below may be incomplete."); err != nil {
			return err
		}
	}
	if len(p.Payments) == 0 {
		_, err := fmt.Fprintln(w, "No payments.")
		return err
	}
	return renderPaymentRows(w, p.Payments, p.MemberName)
}

func renderPaymentRows(w io.Writer, payments []models.Payment, memberName func(int) string) error {
	tw := newTable(w, "DATE", "MEMBER", "AMOUNT", "TYPE", "DESCRIPTION", "DUE", "STATUS")
	for _, pay := range payments {
		member := fmt.Sprint(pay.MemberID)
		if memberName != nil {
			if name := memberName(pay.MemberID); name != "" {
				member = name
			}
		}
		row(tw, orDash(pay.PaymentDate), member, money(pay.Amount), pay.PaymentType,
			orDash(pay.Description), orDash(utils.Val(pay.DueDate)),
			status(string(pay.Status), pay.Status.Severity()))
	}
	return tw.Flush()
}
