package api

// displaySymbols is the total mapping from OpenWeather condition icon codes
// to display symbols. Codes cover sky condition plus a day/night suffix.
var displaySymbols = map[string]string{
	"01d": "sun",
	"01n": "sun",
	"02d": "cloud-sun",
	"02n": "cloud-sun",
	"03d": "cloud-sun",
	"03n": "cloud-sun",
	"04d": "cloud-sun",
	"04n": "cloud-sun",
	"09d": "drizzle",
	"09n": "drizzle",
	"10d": "rain",
	"10n": "rain",
	"11d": "lightning",
	"11n": "lightning",
	"13d": "snow",
	"13n": "snow",
	"50d": "cloud",
	"50n": "cloud",
}

// defaultSymbol is used for any condition code outside the known set.
const defaultSymbol = "cloud"

// SymbolFor resolves a condition icon code to its display symbol.
func SymbolFor(code string) string {
	if symbol, ok := displaySymbols[code]; ok {
		return symbol
	}
	return defaultSymbol
}
