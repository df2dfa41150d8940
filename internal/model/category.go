package model

// Category is the engine's internal category enumeration. Values are
// stable identifiers; presentation names live with the caller.
type Category string

// Canonical categories. The taxonomy table and pattern rules both target
// these; user rules may additionally target free-form custom categories.
const (
	CategoryUncategorized Category = "UNCATEGORIZED"

	CategoryGroceries     Category = "GROCERIES"
	CategoryRestaurants   Category = "RESTAURANTS"
	CategoryCoffee        Category = "COFFEE"
	CategoryRent          Category = "RENT"
	CategoryMortgage      Category = "MORTGAGE"
	CategoryUtilities     Category = "UTILITIES"
	CategorySubscription  Category = "SUBSCRIPTION"
	CategoryTransport     Category = "TRANSPORT"
	CategoryTravel        Category = "TRAVEL"
	CategoryShopping      Category = "SHOPPING"
	CategoryEntertainment Category = "ENTERTAINMENT"
	CategoryHealthcare    Category = "HEALTHCARE"
	CategoryInsurance     Category = "INSURANCE"
	CategoryEducation     Category = "EDUCATION"
	CategoryPersonalCare  Category = "PERSONAL_CARE"
	CategoryIncome        Category = "INCOME"
	CategoryTransfer      Category = "TRANSFER"
	CategoryFees          Category = "FEES"
	CategoryTaxes         Category = "TAXES"
	CategoryCharity       Category = "CHARITY"
	CategoryPets          Category = "PETS"
	CategoryHome          Category = "HOME"
	CategoryATM           Category = "ATM"
)

// IsUncategorized reports whether the category is the explicit terminal
// uncategorized state.
func (c Category) IsUncategorized() bool {
	return c == CategoryUncategorized || c == ""
}

// String implements fmt.Stringer.
func (c Category) String() string {
	if c == "" {
		return string(CategoryUncategorized)
	}
	return string(c)
}
