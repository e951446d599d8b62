package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	couponmodel "pharmapos-backend/internal/domains/coupon/model"
	"pharmapos-backend/internal/domains/sale/model"
)

var reportHundred = decimal.NewFromInt(100)

func (s *saleService) Summary(ctx context.Context, filter model.ListSalesFilter) (*model.SalesSummary, error) {
	sales, err := s.salesInRange(ctx, filter)
	if err != nil {
		return nil, err
	}

	summary := &model.SalesSummary{
		GrossSales:    decimal.Zero,
		TotalDiscount: decimal.Zero,
		NetSales:      decimal.Zero,
	}
	for _, sale := range sales {
		summary.Count++
		summary.GrossSales = summary.GrossSales.Add(sale.Subtotal)
		summary.TotalDiscount = summary.TotalDiscount.Add(sale.Discount)
		summary.NetSales = summary.NetSales.Add(sale.Total)
	}
	return summary, nil
}

// VendorCompensationReport groups redemptions by coupon code and splits
// each code's total discount per its snapshotted compensation terms.
func (s *saleService) VendorCompensationReport(ctx context.Context, filter model.ListSalesFilter) ([]model.VendorCompensationRow, error) {
	sales, err := s.salesInRange(ctx, filter)
	if err != nil {
		return nil, err
	}

	rowsByCode := make(map[string]*model.VendorCompensationRow)
	for _, sale := range sales {
		if sale.CouponSnapshot == nil || sale.Discount.IsZero() {
			continue
		}
		snap := sale.CouponSnapshot

		row, ok := rowsByCode[snap.Code]
		if !ok {
			row = &model.VendorCompensationRow{
				CouponCode:       snap.Code,
				VendorName:       snap.VendorName,
				CompensationType: snap.CompensationType,
				TotalDiscount:    decimal.Zero,
				VendorShare:      decimal.Zero,
				MEPShare:         decimal.Zero,
			}
			rowsByCode[snap.Code] = row
		}

		row.Redemptions++
		row.TotalDiscount = row.TotalDiscount.Add(sale.Discount)

		vendorShare, mepShare := splitCompensation(snap, sale.Discount)
		row.VendorShare = row.VendorShare.Add(vendorShare)
		row.MEPShare = row.MEPShare.Add(mepShare)
	}

	rows := make([]model.VendorCompensationRow, 0, len(rowsByCode))
	for _, row := range rowsByCode {
		row.TotalDiscount = row.TotalDiscount.Round(2)
		row.VendorShare = row.VendorShare.Round(2)
		row.MEPShare = row.MEPShare.Round(2)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].CouponCode < rows[j].CouponCode })
	return rows, nil
}

// ItemSalesReport expands every sale into line rows, allocating each
// sale's discount across its eligible lines in proportion to gross value.
func (s *saleService) ItemSalesReport(ctx context.Context, filter model.ListSalesFilter) ([]model.ItemSalesRow, error) {
	sales, err := s.salesInRange(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows := make([]model.ItemSalesRow, 0)
	for _, sale := range sales {
		eligible, eligibleTotal := eligibleLines(&sale)

		for _, line := range sale.Lines {
			row := model.ItemSalesRow{
				TransactionID: sale.ID,
				SoldAt:        sale.CreatedAt,
				ItemID:        line.ItemID,
				Name:          line.Name,
				SKU:           line.SKU,
				Quantity:      line.Quantity,
				GrossAmount:   line.LineTotal,
				Discount:      decimal.Zero,
				CouponCode:    sale.CouponCode,
			}

			if sale.Discount.IsPositive() && eligibleTotal.IsPositive() {
				if _, ok := eligible[line.ItemID]; ok {
					row.Discount = line.LineTotal.Div(eligibleTotal).Mul(sale.Discount).Round(2)
				}
			}
			row.NetAmount = row.GrossAmount.Sub(row.Discount)
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (s *saleService) salesInRange(ctx context.Context, filter model.ListSalesFilter) ([]model.Transaction, error) {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, model.ErrInvalidDateRange
	}
	return s.saleRepo.ListInRange(ctx, filter)
}

// eligibleLines returns the set of line item ids the sale's discount was
// computed over, and their gross total. With no snapshot or an empty
// applicable set, every line is eligible.
func eligibleLines(sale *model.Transaction) (map[uuid.UUID]struct{}, decimal.Decimal) {
	eligible := make(map[uuid.UUID]struct{}, len(sale.Lines))

	if sale.CouponSnapshot != nil && len(sale.CouponSnapshot.ApplicableItemIDs) > 0 {
		wanted := make(map[uuid.UUID]struct{}, len(sale.CouponSnapshot.ApplicableItemIDs))
		for _, id := range sale.CouponSnapshot.ApplicableItemIDs {
			wanted[id] = struct{}{}
		}
		total := decimal.Zero
		for _, line := range sale.Lines {
			if _, ok := wanted[line.ItemID]; ok {
				eligible[line.ItemID] = struct{}{}
				total = total.Add(line.LineTotal)
			}
		}
		return eligible, total
	}

	total := decimal.Zero
	for _, line := range sale.Lines {
		eligible[line.ItemID] = struct{}{}
		total = total.Add(line.LineTotal)
	}
	return eligible, total
}

func splitCompensation(snap *model.CouponSnapshot, discount decimal.Decimal) (vendor, mep decimal.Decimal) {
	switch couponmodel.CompensationType(snap.CompensationType) {
	case couponmodel.CompensationVendorClaim:
		return discount, decimal.Zero
	case couponmodel.CompensationMEPClaim:
		return decimal.Zero, discount
	case couponmodel.CompensationPartnership:
		if snap.PartnershipVendorPercent == nil || snap.PartnershipMEPPercent == nil {
			return decimal.Zero, decimal.Zero
		}
		vendor = discount.Mul(decimal.NewFromInt(int64(*snap.PartnershipVendorPercent))).Div(reportHundred)
		mep = discount.Mul(decimal.NewFromInt(int64(*snap.PartnershipMEPPercent))).Div(reportHundred)
		return vendor, mep
	default:
		return decimal.Zero, decimal.Zero
	}
}
