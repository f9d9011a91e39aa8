package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/prudhvinik1/estatesync/internal/models"
	"github.com/prudhvinik1/estatesync/internal/utils"
)

const (
	sampleImageURL      = "https://placehold.co/600x400"
	sampleCreatedBy     = "Admin"
	paymentsPerContract = 3
)

// ErrSeedDependencies is returned when rent payments cannot be seeded because
// properties, tenants or contracts are still empty after seeding them.
var ErrSeedDependencies = errors.New("cannot seed rent payments without properties, tenants and contracts")

// SeedAll seeds every empty collection. Collections that already hold
// documents are left alone.
func (s *Stores) SeedAll(ctx context.Context) error {
	steps := []struct {
		name string
		run  func(context.Context) (bool, error)
	}{
		{"buildings", s.SeedBuildings},
		{"properties", s.SeedProperties},
		{"tenants", s.SeedTenants},
		{"contracts", s.SeedContracts},
		{"tasks", s.SeedTasks},
		{"activities", s.SeedActivities},
		{"rentPayments", s.SeedRentPayments},
	}
	for _, step := range steps {
		seeded, err := step.run(ctx)
		if err != nil {
			return errors.Wrapf(err, "failed to seed %s", step.name)
		}
		s.log.Info().Str("collection", step.name).Bool("seeded", seeded).Msg("seed step finished")
	}
	return nil
}

func (s *Stores) SeedBuildings(ctx context.Context) (bool, error) {
	return s.Buildings.SeedIfEmpty(ctx, []models.Building{
		{Name: "Building A", Address: "123 Main Street, Cityville", TotalUnits: 10, ImageURL: sampleImageURL},
		{Name: "Building B", Address: "456 Oak Avenue, Townsburg", TotalUnits: 8, ImageURL: sampleImageURL},
		{Name: "Building C", Address: "789 Pine Road, Villageton", TotalUnits: 12, ImageURL: sampleImageURL},
	})
}

func (s *Stores) SeedProperties(ctx context.Context) (bool, error) {
	property := func(name, address string, typ models.PropertyType, price int64, status models.PropertyStatus, sqm float64, phone, desc string) models.Property {
		return models.Property{
			Name:         name,
			Address:      address,
			Type:         typ,
			Price:        decimal.NewFromInt(price),
			Status:       status,
			SquareMeters: sqm,
			ContactPhone: phone,
			Description:  desc,
			ImageURL:     sampleImageURL,
		}
	}

	return s.Properties.SeedIfEmpty(ctx, []models.Property{
		property("Luxury Apartment", "123 Sunset Blvd, Los Angeles, CA", models.PropertyTypeApartment, 250000, models.StatusAvailable, 85,
			"(123) 456-7890", "Beautiful luxury apartment with modern amenities"),
		property("Downtown Shop", "456 Ocean Ave, Miami, FL", models.PropertyTypeShop, 450000, models.StatusAvailable, 120,
			"(123) 456-7891", "Prime location shop in downtown area"),
		property("Modern Apartment", "789 Main St, New York, NY", models.PropertyTypeApartment, 320000, models.StatusSold, 95,
			"(123) 456-7892", "Modern apartment with great city views"),
		property("Family House", "321 Park Rd, Chicago, IL", models.PropertyTypeHouse, 550000, models.StatusAvailable, 180,
			"(123) 456-7893", "Spacious family house with garden"),
		// rented prices are annual rent
		property("Rental Apartment", "555 Rental Ave, Boston, MA", models.PropertyTypeApartment, 36000, models.StatusRented, 75,
			"(123) 456-7894", "Cozy apartment currently rented out"),
		property("Rental Shop", "777 Business St, Seattle, WA", models.PropertyTypeShop, 60000, models.StatusRented, 150,
			"(123) 456-7895", "Commercial shop space with current tenant"),
	})
}

func (s *Stores) SeedTenants(ctx context.Context) (bool, error) {
	today := startOfDay(s.now())

	return s.Tenants.SeedIfEmpty(ctx, []models.Tenant{
		{
			Name:         "John Doe",
			Email:        "john.doe@example.com",
			Phone:        "(555) 123-4567",
			PropertyType: models.PropertyTypeApartment,
			LeaseStart:   today.AddDate(0, -11, 0),
			LeaseEnd:     today.AddDate(0, 0, 21),
		},
		{
			Name:         "Sarah Johnson",
			Email:        "sarah.johnson@example.com",
			Phone:        "(555) 987-6543",
			PropertyType: models.PropertyTypeShop,
			LeaseStart:   today.AddDate(0, -3, 0),
			LeaseEnd:     today.AddDate(0, 6, 0),
		},
	})
}

// SeedContracts links the sample leases to the first two tenants, seeding
// tenants first when needed.
func (s *Stores) SeedContracts(ctx context.Context) (bool, error) {
	if _, err := s.SeedTenants(ctx); err != nil {
		return false, err
	}
	s.loader.EnsureLoaded(ctx, s.Tenants)

	tenants := s.Tenants.Items()
	tenantID := func(i int) string {
		if i < len(tenants) {
			return tenants[i].ID
		}
		return ""
	}

	today := startOfDay(s.now())
	return s.Contracts.SeedIfEmpty(ctx, []models.Contract{
		{
			Title:         "Property Sale Agreement",
			ContractType:  models.ContractTypeSale,
			StartDate:     today,
			EndDate:       today.AddDate(1, 0, 0),
			Amount:        decimal.NewFromInt(250000),
			DepositAmount: decimal.NewFromInt(25000),
			IsActive:      true,
			CreatedBy:     sampleCreatedBy,
			Notes:         "Sale contract for downtown property",
		},
		{
			Title:         "Commercial Lease Agreement",
			TenantID:      tenantID(1),
			ContractType:  models.ContractTypeLease,
			StartDate:     today.AddDate(0, -3, 0),
			EndDate:       today.AddDate(0, 6, 0),
			Amount:        decimal.NewFromInt(2200),
			DepositAmount: decimal.NewFromInt(4400),
			IsActive:      true,
			CreatedBy:     sampleCreatedBy,
			Notes:         "6-month commercial lease",
		},
		{
			Title:         "Residential Lease Contract",
			TenantID:      tenantID(0),
			ContractType:  models.ContractTypeLease,
			StartDate:     today.AddDate(0, -11, 0),
			EndDate:       today.AddDate(0, 0, 21),
			Amount:        decimal.NewFromInt(1800),
			DepositAmount: decimal.NewFromInt(3600),
			IsActive:      true,
			CreatedBy:     sampleCreatedBy,
			Notes:         "Expiring soon, needs renewal",
		},
	})
}

func (s *Stores) SeedTasks(ctx context.Context) (bool, error) {
	day := func(offset int) string {
		return s.now().AddDate(0, 0, offset).Format(time.DateOnly)
	}

	return s.Tasks.SeedIfEmpty(ctx, []models.Task{
		{Title: "Collect rent from tenant #103", Due: day(5), Priority: models.PriorityHigh},
		{Title: "Schedule property inspection", Due: day(10), Priority: models.PriorityMedium},
		{Title: "Renew contract for property #7", Due: day(15), Done: true, Priority: models.PriorityMedium},
		{Title: "Fix plumbing issue at property #2", Due: day(-5), Priority: models.PriorityHigh},
	})
}

func (s *Stores) SeedActivities(ctx context.Context) (bool, error) {
	ago := func(days int) time.Time { return s.now().AddDate(0, 0, -days) }

	return s.Activities.SeedIfEmpty(ctx, []models.Activity{
		{Title: "Payment Received", Date: ago(2), Description: "Received $1,200 from John Doe for Property #103", Icon: "payments", Color: "positive"},
		{Title: "New Tenant", Date: ago(4), Description: "Sarah Johnson signed a lease for Property #205", Icon: "person_add", Color: "info"},
		{Title: "Maintenance Request", Date: ago(7), Description: "Plumbing issue reported at Property #118", Icon: "build", Color: "warning"},
		{Title: "Contract Renewal", Date: ago(11), Description: "Michael Brown renewed lease for Property #307", Icon: "description", Color: "primary"},
	})
}

// SeedRentPayments seeds properties, tenants and contracts, then writes the
// last three months of payments for every contract.
func (s *Stores) SeedRentPayments(ctx context.Context) (bool, error) {
	existing, err := s.gw.List(ctx, s.RentPayments.Collection())
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	if _, err := s.SeedProperties(ctx); err != nil {
		return false, err
	}
	if _, err := s.SeedContracts(ctx); err != nil {
		return false, err
	}

	s.Properties.Fetch(ctx)
	s.Tenants.Fetch(ctx)
	s.Contracts.Fetch(ctx)

	if s.Properties.Len() == 0 || s.Tenants.Len() == 0 || s.Contracts.Len() == 0 {
		return false, ErrSeedDependencies
	}

	return s.RentPayments.SeedIfEmpty(ctx, samplePayments(s.Contracts.Items(), s.now()))
}

var sampleMethods = []models.PaymentMethod{
	models.PaymentMethodCash,
	models.PaymentMethodBankTransfer,
	models.PaymentMethodCheck,
}

// samplePayments covers the active leases that name a tenant.
func samplePayments(contracts []models.Contract, now time.Time) []models.RentPayment {
	payments := make([]models.RentPayment, 0, len(contracts)*paymentsPerContract)
	for _, c := range contracts {
		if c.ContractType != models.ContractTypeLease || !c.IsActive || c.TenantID == "" {
			continue
		}
		for i := 0; i < paymentsPerContract; i++ {
			month := utils.MonthsBack(now, i)
			paymentMonth := utils.PaymentMonth(month)
			payments = append(payments, models.RentPayment{
				TenantID:      c.TenantID,
				PropertyID:    c.PropertyID,
				ContractID:    c.ID,
				Amount:        c.Amount,
				PaymentDate:   month.AddDate(0, 0, 14),
				PaymentMonth:  paymentMonth,
				PaymentMethod: sampleMethods[rand.IntN(len(sampleMethods))],
				ReceiptNumber: fmt.Sprintf("REC-%d", 1000+rand.IntN(9000)),
				Notes:         "Rent payment for " + paymentMonth,
				CreatedBy:     sampleCreatedBy,
			})
		}
	}
	return payments
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
