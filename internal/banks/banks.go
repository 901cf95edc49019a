package banks

// Bank is one payment channel from the fixed catalog.
type Bank struct {
	Code      string // callback id, e.g. "pay_mbank"
	Title     string // stored on transactions and shown to the user
	Image     string // local requisites image, may be absent on disk
	BranchURL string // branch locator
	Mir       bool   // settles over the Mir rail, needs the cautionary note
}

var Catalog = []Bank{
	{
		Code:      "pay_mbank",
		Title:     "MBank",
		Image:     "assets/banks/mbank.jpg",
		BranchURL: "https://mbank.kg/offices",
	},
	{
		Code:      "pay_optima",
		Title:     "Optima Bank",
		Image:     "assets/banks/optima.jpg",
		BranchURL: "https://www.optimabank.kg/branches",
	},
	{
		Code:      "pay_bakai",
		Title:     "Bakai Bank",
		Image:     "assets/banks/bakai.jpg",
		BranchURL: "https://bakai.kg/branches",
	},
	{
		Code:      "pay_sber",
		Title:     "Сбербанк (Mir)",
		Image:     "assets/banks/sber.jpg",
		BranchURL: "https://www.sberbank.ru/ru/about/branches",
		Mir:       true,
	},
}

func ByCode(code string) (Bank, bool) {
	for _, b := range Catalog {
		if b.Code == code {
			return b, true
		}
	}
	return Bank{}, false
}
