package seeders

import (
	"aircon-admin/internal/authz"

	"github.com/shopspring/decimal"
)

var roleDescriptions = map[authz.Role]string{
	authz.RoleStaff:      "Back-office staff with full access",
	authz.RoleCustomer:   "Customer who books and follows their own orders",
	authz.RoleTechnician: "Field technician assigned to orders",
}

type userSeed struct {
	Name  string
	Email string
	Role  authz.Role
	Phone string
}

var usersData = []userSeed{
	{Name: "Admin", Email: "admin@aircon.local", Role: authz.RoleStaff},
	{Name: "Budi Santoso", Email: "budi@aircon.local", Role: authz.RoleCustomer},
	{Name: "Agus Pratama", Email: "agus@aircon.local", Role: authz.RoleTechnician, Phone: "+6281234567890"},
	{Name: "Dewi Lestari", Email: "dewi@aircon.local", Role: authz.RoleTechnician, Phone: "+6281298765432"},
}

type serviceSeed struct {
	Title string
	Price decimal.Decimal
}

type categorySeed struct {
	Name     string
	Services []serviceSeed
}

var catalogData = []categorySeed{
	{
		Name: "Maintenance",
		Services: []serviceSeed{
			{Title: "AC Cleaning", Price: decimal.NewFromInt(75000)},
			{Title: "Freon Refill R32", Price: decimal.NewFromInt(250000)},
			{Title: "Freon Refill R410A", Price: decimal.NewFromInt(300000)},
		},
	},
	{
		Name: "Installation",
		Services: []serviceSeed{
			{Title: "Split AC Installation 0.5-1 PK", Price: decimal.NewFromInt(350000)},
			{Title: "Split AC Installation 1.5-2 PK", Price: decimal.NewFromInt(450000)},
			{Title: "AC Dismantling", Price: decimal.NewFromInt(150000)},
		},
	},
	{
		Name: "Repair",
		Services: []serviceSeed{
			{Title: "Leak Check", Price: decimal.NewFromInt(100000)},
			{Title: "Capacitor Replacement", Price: decimal.RequireFromString("185000.50")},
		},
	},
}
