package config

// Default file locations, relative to the working directory.
const (
	DefaultDataDir        = "data_package"
	DefaultHouseholdsFile = "households.csv"
	DefaultExpensesFile   = "expenses.csv"
	DefaultProductsFile   = "products.csv"
	DefaultOutputDir      = "output"
	DefaultSharesFile     = "national_share.csv"
	DefaultPlotFile       = "lorenz_curve.png"
	DefaultStateFile      = ".hbstat/state.db"
	DefaultOnUnmatched    = UnmatchedDrop
)

// DefaultCategories returns the COICOP level-1 division names keyed by
// their survey codes. Surveys using a localized or revised classification
// override this table in hbstat.yaml.
func DefaultCategories() map[string]string {
	return map[string]string{
		"1":  "FOOD AND NON-ALCOHOLIC BEVERAGES",
		"2":  "ALCOHOLIC BEVERAGES, TOBACCO AND NARCOTICS",
		"3":  "CLOTHING AND FOOTWEAR",
		"4":  "HOUSING, WATER, ELECTRICITY, GAS AND OTHER FUELS",
		"5":  "FURNISHINGS, HOUSEHOLD EQUIPMENT AND ROUTINE HOUSEHOLD MAINTENANCE",
		"6":  "HEALTH",
		"7":  "TRANSPORT",
		"8":  "COMMUNICATION",
		"9":  "RECREATION AND CULTURE",
		"10": "EDUCATION",
		"11": "RESTAURANTS AND HOTELS",
		"12": "MISCELLANEOUS GOODS AND SERVICES",
	}
}

// Default returns a Config populated with all defaults.
func Default() *Config {
	return &Config{
		DataDir:        DefaultDataDir,
		HouseholdsFile: DefaultHouseholdsFile,
		ExpensesFile:   DefaultExpensesFile,
		ProductsFile:   DefaultProductsFile,
		OutputDir:      DefaultOutputDir,
		SharesFile:     DefaultSharesFile,
		PlotFile:       DefaultPlotFile,
		StatePath:      DefaultStateFile,
		OnUnmatched:    DefaultOnUnmatched,
		Categories:     DefaultCategories(),
	}
}
