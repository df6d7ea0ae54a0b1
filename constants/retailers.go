package constants

// KnownRetailers holds uppercase name fragments of well-known retailers. A
// receipt line containing one of these fragments is treated as a store-name
// candidate. Fragments are matched case-insensitively against the whole line.
var KnownRetailers = []string{
	"WALMART",
	"TARGET",
	"HOME DEPOT",
	"LOWE'S",
	"LOWES",
	"COSTCO",
	"BEST BUY",
	"KROGER",
	"SAFEWAY",
	"WALGREENS",
	"CVS",
	"IKEA",
	"AMAZON",
	"SAM'S CLUB",
	"SAMS CLUB",
	"ALDI",
	"PUBLIX",
	"TRADER JOE",
	"WHOLE FOODS",
	"DOLLAR GENERAL",
	"MENARDS",
	"ACE HARDWARE",
	"STAPLES",
	"OFFICE DEPOT",
	"PETSMART",
	"PETCO",
	"MACY'S",
	"MACYS",
	"NORDSTROM",
	"JCPENNEY",
	"SEARS",
	"BED BATH",
	"WILLIAMS-SONOMA",
	"CRATE & BARREL",
}
