package taxonomy

import "github.com/quillback/spendsort/internal/model"

// DefaultTable returns the built-in provider taxonomy, used when no
// taxonomy file is configured. Codes and labels follow the aggregation
// provider's legacy category hierarchy.
func DefaultTable() *Table {
	return NewTable("builtin-1", defaultEntries(),
		defaultPrimaryFallback(), defaultSecondaryFallback(), defaultMerchants())
}

func defaultEntries() []Entry {
	return []Entry{
		{Code: "13005000", Primary: "Food and Drink", Secondary: "Restaurants", Category: model.CategoryRestaurants},
		{Code: "13005043", Primary: "Food and Drink", Secondary: "Coffee Shop", Category: model.CategoryCoffee},
		{Code: "13005032", Primary: "Food and Drink", Secondary: "Bar", Category: model.CategoryEntertainment},
		{Code: "19047000", Primary: "Shops", Secondary: "Supermarkets and Groceries", Category: model.CategoryGroceries},
		{Code: "19013000", Primary: "Shops", Secondary: "Clothing and Accessories", Category: model.CategoryShopping},
		{Code: "19019000", Primary: "Shops", Secondary: "Digital Purchase", Category: model.CategoryShopping},
		{Code: "16002000", Primary: "Payment", Secondary: "Rent", Category: model.CategoryRent},
		{Code: "16003000", Primary: "Payment", Secondary: "Loan", Category: model.CategoryMortgage},
		{Code: "18068005", Primary: "Service", Secondary: "Utilities", Category: model.CategoryUtilities},
		{Code: "18061000", Primary: "Service", Secondary: "Subscription", Category: model.CategorySubscription},
		{Code: "18030000", Primary: "Service", Secondary: "Insurance", Category: model.CategoryInsurance},
		{Code: "22016000", Primary: "Travel", Secondary: "Public Transportation Services", Category: model.CategoryTransport},
		{Code: "22006001", Primary: "Travel", Secondary: "Ride Share", Category: model.CategoryTransport},
		{Code: "22001000", Primary: "Travel", Secondary: "Airlines and Aviation Services", Category: model.CategoryTravel},
		{Code: "22012003", Primary: "Travel", Secondary: "Lodging", Category: model.CategoryTravel},
		{Code: "17001000", Primary: "Recreation", Secondary: "Arts and Entertainment", Category: model.CategoryEntertainment},
		{Code: "17018000", Primary: "Recreation", Secondary: "Gyms and Fitness Centers", Category: model.CategoryPersonalCare},
		{Code: "14001000", Primary: "Healthcare", Secondary: "Healthcare Services", Category: model.CategoryHealthcare},
		{Code: "14002000", Primary: "Healthcare", Secondary: "Physicians", Category: model.CategoryHealthcare},
		{Code: "21001000", Primary: "Transfer", Secondary: "Internal Account Transfer", Category: model.CategoryTransfer},
		{Code: "21012002", Primary: "Transfer", Secondary: "Deposit", Category: model.CategoryIncome},
		{Code: "21012000", Primary: "Transfer", Secondary: "Withdrawal", Category: model.CategoryATM},
		{Code: "15001000", Primary: "Interest", Secondary: "Interest Earned", Category: model.CategoryIncome},
		{Code: "10000000", Primary: "Bank Fees", Secondary: "Overdraft", Category: model.CategoryFees},
		{Code: "10003000", Primary: "Bank Fees", Secondary: "ATM", Category: model.CategoryFees},
		{Code: "20001000", Primary: "Tax", Secondary: "Payment", Category: model.CategoryTaxes},
		{Code: "12002000", Primary: "Community", Secondary: "Education", Category: model.CategoryEducation},
		{Code: "12008000", Primary: "Community", Secondary: "Religious Organizations", Category: model.CategoryCharity},
	}
}

func defaultPrimaryFallback() map[string]model.Category {
	return map[string]model.Category{
		"Food and Drink": model.CategoryRestaurants,
		"Shops":          model.CategoryShopping,
		"Travel":         model.CategoryTravel,
		"Recreation":     model.CategoryEntertainment,
		"Healthcare":     model.CategoryHealthcare,
		"Transfer":       model.CategoryTransfer,
		"Bank Fees":      model.CategoryFees,
		"Interest":       model.CategoryIncome,
		"Tax":            model.CategoryTaxes,
		"Community":      model.CategoryCharity,
	}
}

func defaultSecondaryFallback() map[string]model.Category {
	return map[string]model.Category{
		"Restaurants":                model.CategoryRestaurants,
		"Coffee Shop":                model.CategoryCoffee,
		"Supermarkets and Groceries": model.CategoryGroceries,
		"Rent":                       model.CategoryRent,
		"Utilities":                  model.CategoryUtilities,
		"Subscription":               model.CategorySubscription,
		"Insurance":                  model.CategoryInsurance,
		"Ride Share":                 model.CategoryTransport,
		"Lodging":                    model.CategoryTravel,
		"Gyms and Fitness Centers":   model.CategoryPersonalCare,
		"Veterinarians":              model.CategoryPets,
		"Hardware Store":             model.CategoryHome,
	}
}

// defaultMerchants is the static merchant map consulted for transactions
// carrying no provider labels at all.
func defaultMerchants() map[string]model.Category {
	return map[string]model.Category{
		"Netflix":        model.CategorySubscription,
		"Spotify":        model.CategorySubscription,
		"Hulu":           model.CategorySubscription,
		"Whole Foods":    model.CategoryGroceries,
		"Trader Joe's":   model.CategoryGroceries,
		"Safeway":        model.CategoryGroceries,
		"Kroger":         model.CategoryGroceries,
		"Starbucks":      model.CategoryCoffee,
		"Dunkin":         model.CategoryCoffee,
		"Uber":           model.CategoryTransport,
		"Lyft":           model.CategoryTransport,
		"Shell":          model.CategoryTransport,
		"Chevron":        model.CategoryTransport,
		"Amazon":         model.CategoryShopping,
		"Target":         model.CategoryShopping,
		"Costco":         model.CategoryGroceries,
		"Walgreens":      model.CategoryHealthcare,
		"CVS":            model.CategoryHealthcare,
		"Comcast":        model.CategoryUtilities,
		"PG&E":           model.CategoryUtilities,
		"Chipotle":       model.CategoryRestaurants,
		"McDonald's":     model.CategoryRestaurants,
		"Delta Airlines": model.CategoryTravel,
		"Airbnb":         model.CategoryTravel,
		"Petco":          model.CategoryPets,
		"Home Depot":     model.CategoryHome,
	}
}
