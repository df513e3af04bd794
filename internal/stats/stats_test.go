package stats

import (
	"reflect"
	"testing"

	"github.com/shipdesk/internal/constants"
	"github.com/shipdesk/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func TestBuildDashboardSummary(t *testing.T) {
	shipments := []models.Shipment{
		{ID: 1, Destination: "Lagos", IsOpen: true, TotalWeight: 100, TotalVolume: 10},
		{ID: 2, Destination: "Abuja", IsOpen: true, TotalWeight: 50, TotalVolume: 5},
		{ID: 3, Destination: "Lagos", IsOpen: false, TotalWeight: 80, TotalVolume: 8},
	}
	partials := []models.PartialShipment{
		{ID: 1, ShipmentID: 1, CustomerID: 1, PaymentStatus: constants.PaymentStatusUnpaid},
		{ID: 2, ShipmentID: 1, CustomerID: 2, PaymentStatus: constants.PaymentStatusPaid},
		{ID: 3, ShipmentID: 2, CustomerID: 1, PaymentStatus: constants.PaymentStatusUnpaid},
	}

	summary := BuildDashboardSummary(shipments, partials)

	if summary.ShipmentCount != 3 || summary.PartialShipmentCount != 3 {
		t.Errorf("counts = %d/%d, want 3/3", summary.ShipmentCount, summary.PartialShipmentCount)
	}

	wantStatus := []StatusGroup{
		{Status: "closed", Count: 1, TotalWeight: 80, TotalVolume: 8},
		{Status: "open", Count: 2, TotalWeight: 150, TotalVolume: 15},
	}
	if !reflect.DeepEqual(summary.ByStatus, wantStatus) {
		t.Errorf("ByStatus = %+v, want %+v", summary.ByStatus, wantStatus)
	}

	wantDestination := []DestinationGroup{
		{Destination: "Abuja", Count: 1, TotalWeight: 50, TotalVolume: 5},
		{Destination: "Lagos", Count: 2, TotalWeight: 180, TotalVolume: 18},
	}
	if !reflect.DeepEqual(summary.ByDestination, wantDestination) {
		t.Errorf("ByDestination = %+v, want %+v", summary.ByDestination, wantDestination)
	}

	wantPayment := []PaymentStatusCount{
		{PaymentStatus: constants.PaymentStatusPaid, Count: 1},
		{PaymentStatus: constants.PaymentStatusUnpaid, Count: 2},
	}
	if !reflect.DeepEqual(summary.ByPaymentStatus, wantPayment) {
		t.Errorf("ByPaymentStatus = %+v, want %+v", summary.ByPaymentStatus, wantPayment)
	}

	wantCustomer := []CustomerCount{
		{CustomerID: 1, Count: 2},
		{CustomerID: 2, Count: 1},
	}
	if !reflect.DeepEqual(summary.ByCustomer, wantCustomer) {
		t.Errorf("ByCustomer = %+v, want %+v", summary.ByCustomer, wantCustomer)
	}
}

func TestBuildDashboardSummaryEmptyInput(t *testing.T) {
	summary := BuildDashboardSummary(nil, nil)
	if summary.ShipmentCount != 0 || summary.PartialShipmentCount != 0 {
		t.Errorf("counts = %d/%d, want 0/0", summary.ShipmentCount, summary.PartialShipmentCount)
	}
	if len(summary.ByStatus) != 0 || len(summary.ByDestination) != 0 {
		t.Errorf("groups should be empty: %+v", summary)
	}
}

func TestBuildFinancialSummary(t *testing.T) {
	partials := []models.PartialShipment{
		{Cost: 100.10, DiscountAmount: 10.05, ExtraCostAmount: 5.55, AmountPaid: 50, PaymentStatus: constants.PaymentStatusPartial},
		{Cost: 200.20, DiscountAmount: 0, ExtraCostAmount: 0, AmountPaid: 200.20, PaymentStatus: constants.PaymentStatusPaid},
		{Cost: 0.30, DiscountAmount: 0, ExtraCostAmount: 0, AmountPaid: 0, PaymentStatus: constants.PaymentStatusUnpaid},
	}

	summary := BuildFinancialSummary(partials)

	if summary.TotalCost != 300.60 {
		t.Errorf("TotalCost = %v, want 300.60", summary.TotalCost)
	}
	if summary.TotalDiscount != 10.05 {
		t.Errorf("TotalDiscount = %v, want 10.05", summary.TotalDiscount)
	}
	if summary.TotalExtraCost != 5.55 {
		t.Errorf("TotalExtraCost = %v, want 5.55", summary.TotalExtraCost)
	}
	if summary.TotalAmountPaid != 250.20 {
		t.Errorf("TotalAmountPaid = %v, want 250.20", summary.TotalAmountPaid)
	}
	// 300.60 + 5.55 - 10.05 - 250.20
	if summary.TotalOutstanding != 45.90 {
		t.Errorf("TotalOutstanding = %v, want 45.90", summary.TotalOutstanding)
	}

	want := []PaymentStatusBreakdown{
		{PaymentStatus: constants.PaymentStatusPaid, Count: 1, TotalCost: 200.20},
		{PaymentStatus: constants.PaymentStatusPartial, Count: 1, TotalCost: 100.10},
		{PaymentStatus: constants.PaymentStatusUnpaid, Count: 1, TotalCost: 0.30},
	}
	if !reflect.DeepEqual(summary.ByPaymentStatus, want) {
		t.Errorf("ByPaymentStatus = %+v, want %+v", summary.ByPaymentStatus, want)
	}
}

func TestBuildFinancialSummaryDecimalSums(t *testing.T) {
	// 0.1 累加 10 次在 float64 下不等于 1.0，decimal 求和应精确
	partials := make([]models.PartialShipment, 10)
	for i := range partials {
		partials[i] = models.PartialShipment{Cost: 0.1, PaymentStatus: constants.PaymentStatusUnpaid}
	}
	summary := BuildFinancialSummary(partials)
	if summary.TotalCost != 1.0 {
		t.Errorf("TotalCost = %v, want 1.0", summary.TotalCost)
	}
	if summary.TotalOutstanding != 1.0 {
		t.Errorf("TotalOutstanding = %v, want 1.0", summary.TotalOutstanding)
	}
}

func TestBuildCustomerSummaryRankings(t *testing.T) {
	customers := make([]models.Customer, 0, 12)
	for i := 1; i <= 12; i++ {
		customers = append(customers, models.Customer{
			ID:      uint(i),
			Name:    "c",
			Balance: float64(i),
		})
	}

	summary := BuildCustomerSummary(customers, nil)

	if len(summary.TopByBalance) != 10 {
		t.Fatalf("TopByBalance = %d entries, want 10", len(summary.TopByBalance))
	}
	if summary.TopByBalance[0].CustomerID != 12 || summary.TopByBalance[0].Value != 12 {
		t.Errorf("top entry = %+v, want customer 12", summary.TopByBalance[0])
	}
	if summary.TopByBalance[9].CustomerID != 3 {
		t.Errorf("tenth entry = %+v, want customer 3", summary.TopByBalance[9])
	}
}

func TestBuildCustomerSummaryStableTieBreak(t *testing.T) {
	customers := []models.Customer{
		{ID: 1, Name: "first", Balance: 5},
		{ID: 2, Name: "second", Balance: 5},
		{ID: 3, Name: "third", Balance: 9},
	}

	summary := BuildCustomerSummary(customers, nil)

	ids := []uint{summary.TopByBalance[0].CustomerID, summary.TopByBalance[1].CustomerID, summary.TopByBalance[2].CustomerID}
	// 并列时保持输入顺序
	if !reflect.DeepEqual(ids, []uint{3, 1, 2}) {
		t.Errorf("ranking order = %v, want [3 1 2]", ids)
	}
}

func TestBuildCustomerSummaryRevenueAndOrigin(t *testing.T) {
	customers := []models.Customer{
		{ID: 1, Name: "Ada", Origin: "referral"},
		{ID: 2, Name: "Ben"},
		{ID: 3, Name: "Cleo"},
	}
	partials := []models.PartialShipment{
		{CustomerID: 1, Cost: 100, ExtraCostAmount: 20, DiscountAmount: 10},
		{CustomerID: 1, Cost: 50},
		{CustomerID: 2, Cost: 500},
	}

	summary := BuildCustomerSummary(customers, partials)

	if summary.TopByRevenue[0].CustomerID != 2 || summary.TopByRevenue[0].Value != 500 {
		t.Errorf("top by revenue = %+v, want customer 2 / 500", summary.TopByRevenue[0])
	}
	if summary.TopByRevenue[1].CustomerID != 1 || summary.TopByRevenue[1].Value != 160 {
		t.Errorf("second by revenue = %+v, want customer 1 / 160", summary.TopByRevenue[1])
	}
	if summary.TopByShipmentCount[0].CustomerID != 1 || summary.TopByShipmentCount[0].Value != 2 {
		t.Errorf("top by shipment count = %+v, want customer 1 / 2", summary.TopByShipmentCount[0])
	}

	wantOrigins := []OriginCount{
		{Origin: constants.CustomerOriginUnknown, Count: 2},
		{Origin: "referral", Count: 1},
	}
	if !reflect.DeepEqual(summary.ByOrigin, wantOrigins) {
		t.Errorf("ByOrigin = %+v, want %+v", summary.ByOrigin, wantOrigins)
	}
}

func TestBuildActivityFeed(t *testing.T) {
	users := []models.User{
		{ID: 1, Username: "alice"},
		{ID: 2, Username: "bob"},
	}
	input := ActivityInput{
		Shipments: []models.Shipment{
			{ID: 10, CreatedByUserID: uintPtr(1), UpdatedByUserID: uintPtr(2)},
		},
		Customers: []models.Customer{
			{ID: 20, CreatedByUserID: uintPtr(1)},
			{ID: 21}, // 无审计字段，不产生事件
		},
	}

	feed := BuildActivityFeed(input, users)

	want := []Activity{
		{Action: constants.ActivityActionCreate, EntityType: constants.TableShipments, EntityID: 10, UserID: 1, Username: "alice"},
		{Action: constants.ActivityActionUpdate, EntityType: constants.TableShipments, EntityID: 10, UserID: 2, Username: "bob"},
		{Action: constants.ActivityActionCreate, EntityType: constants.TableCustomers, EntityID: 20, UserID: 1, Username: "alice"},
	}
	if !reflect.DeepEqual(feed, want) {
		t.Errorf("feed = %+v, want %+v", feed, want)
	}
}

func TestBuildActivityFeedSkipsUnknownUsers(t *testing.T) {
	users := []models.User{{ID: 1, Username: "alice"}}
	input := ActivityInput{
		Packages: []models.Package{
			{ID: 5, CreatedByUserID: uintPtr(99), UpdatedByUserID: uintPtr(1)},
		},
	}

	feed := BuildActivityFeed(input, users)

	if len(feed) != 1 {
		t.Fatalf("feed = %d entries, want 1", len(feed))
	}
	if feed[0].UserID != 1 || feed[0].Action != constants.ActivityActionUpdate {
		t.Errorf("feed[0] = %+v, want update by user 1", feed[0])
	}
}
