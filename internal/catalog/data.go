package catalog

import "multi-city-planner/internal/models"

type cityRecord struct {
	city     models.CityDestination
	airports []models.AirportInfo
	stations []models.StationInfo
	aliases  []string
	major    bool
}

func city(id, name, country, countryCode string, lat, lng float64, tz, currency, language string) models.CityDestination {
	return models.CityDestination{
		ID:          id,
		Name:        name,
		Country:     country,
		CountryCode: countryCode,
		Coordinates: models.Coordinates{Lat: lat, Lng: lng},
		Timezone:    tz,
		Currency:    currency,
		Language:    language,
	}
}

func airport(cityID, code, name string) models.AirportInfo {
	return models.AirportInfo{Code: code, Name: name, CityID: cityID}
}

func station(cityID, code, name string) models.StationInfo {
	return models.StationInfo{Code: code, Name: name, CityID: cityID}
}

// records is the closed reference dataset. Airports and stations are listed
// main hub first; the option generator always picks the first entry.
var records = []cityRecord{
	{
		city:     city("paris", "Paris", "France", "FR", 48.8566, 2.3522, "Europe/Paris", "EUR", "fr"),
		airports: []models.AirportInfo{airport("paris", "CDG", "Charles de Gaulle"), airport("paris", "ORY", "Orly")},
		stations: []models.StationInfo{station("paris", "FRPLY", "Gare de Lyon"), station("paris", "FRPNO", "Gare du Nord")},
		major:    true,
	},
	{
		city:     city("london", "London", "United Kingdom", "GB", 51.5074, -0.1278, "Europe/London", "GBP", "en"),
		airports: []models.AirportInfo{airport("london", "LHR", "Heathrow"), airport("london", "LGW", "Gatwick")},
		stations: []models.StationInfo{station("london", "GBSPX", "St Pancras International")},
		major:    true,
	},
	{
		city:     city("rome", "Rome", "Italy", "IT", 41.9028, 12.4964, "Europe/Rome", "EUR", "it"),
		airports: []models.AirportInfo{airport("rome", "FCO", "Fiumicino"), airport("rome", "CIA", "Ciampino")},
		stations: []models.StationInfo{station("rome", "ITRMT", "Roma Termini")},
		aliases:  []string{"Roma"},
		major:    true,
	},
	{
		city:     city("barcelona", "Barcelona", "Spain", "ES", 41.3851, 2.1734, "Europe/Madrid", "EUR", "es"),
		airports: []models.AirportInfo{airport("barcelona", "BCN", "El Prat")},
		stations: []models.StationInfo{station("barcelona", "ESBCN", "Barcelona Sants")},
	},
	{
		city:     city("madrid", "Madrid", "Spain", "ES", 40.4168, -3.7038, "Europe/Madrid", "EUR", "es"),
		airports: []models.AirportInfo{airport("madrid", "MAD", "Barajas")},
		stations: []models.StationInfo{station("madrid", "ESMAT", "Madrid Atocha")},
		major:    true,
	},
	{
		city:     city("amsterdam", "Amsterdam", "Netherlands", "NL", 52.3676, 4.9041, "Europe/Amsterdam", "EUR", "nl"),
		airports: []models.AirportInfo{airport("amsterdam", "AMS", "Schiphol")},
		stations: []models.StationInfo{station("amsterdam", "NLAMA", "Amsterdam Centraal")},
		major:    true,
	},
	{
		city:     city("berlin", "Berlin", "Germany", "DE", 52.5200, 13.4050, "Europe/Berlin", "EUR", "de"),
		airports: []models.AirportInfo{airport("berlin", "BER", "Berlin Brandenburg")},
		stations: []models.StationInfo{station("berlin", "DEBHF", "Berlin Hauptbahnhof")},
		major:    true,
	},
	{
		city:     city("munich", "Munich", "Germany", "DE", 48.1351, 11.5820, "Europe/Berlin", "EUR", "de"),
		airports: []models.AirportInfo{airport("munich", "MUC", "Munich Airport")},
		stations: []models.StationInfo{station("munich", "DEMUC", "München Hauptbahnhof")},
		aliases:  []string{"München", "Muenchen"},
	},
	{
		city:     city("vienna", "Vienna", "Austria", "AT", 48.2082, 16.3738, "Europe/Vienna", "EUR", "de"),
		airports: []models.AirportInfo{airport("vienna", "VIE", "Vienna International")},
		stations: []models.StationInfo{station("vienna", "ATWHB", "Wien Hauptbahnhof")},
		aliases:  []string{"Wien"},
	},
	{
		city:     city("prague", "Prague", "Czechia", "CZ", 50.0755, 14.4378, "Europe/Prague", "CZK", "cs"),
		airports: []models.AirportInfo{airport("prague", "PRG", "Václav Havel")},
		stations: []models.StationInfo{station("prague", "CZPHN", "Praha hlavní nádraží")},
		aliases:  []string{"Praha"},
	},
	{
		city:     city("budapest", "Budapest", "Hungary", "HU", 47.4979, 19.0402, "Europe/Budapest", "HUF", "hu"),
		airports: []models.AirportInfo{airport("budapest", "BUD", "Budapest Ferenc Liszt")},
		stations: []models.StationInfo{station("budapest", "HUBPK", "Budapest Keleti")},
	},
	{
		city:     city("zurich", "Zurich", "Switzerland", "CH", 47.3769, 8.5417, "Europe/Zurich", "CHF", "de"),
		airports: []models.AirportInfo{airport("zurich", "ZRH", "Zurich Airport")},
		stations: []models.StationInfo{station("zurich", "CHZRH", "Zürich HB")},
	},
	{
		city:     city("milan", "Milan", "Italy", "IT", 45.4642, 9.1900, "Europe/Rome", "EUR", "it"),
		airports: []models.AirportInfo{airport("milan", "MXP", "Malpensa"), airport("milan", "LIN", "Linate")},
		stations: []models.StationInfo{station("milan", "ITMIC", "Milano Centrale")},
		aliases:  []string{"Milano"},
	},
	{
		city:     city("florence", "Florence", "Italy", "IT", 43.7696, 11.2558, "Europe/Rome", "EUR", "it"),
		airports: []models.AirportInfo{airport("florence", "FLR", "Peretola")},
		stations: []models.StationInfo{station("florence", "ITFSM", "Firenze Santa Maria Novella")},
		aliases:  []string{"Firenze"},
	},
	{
		city:     city("venice", "Venice", "Italy", "IT", 45.4408, 12.3155, "Europe/Rome", "EUR", "it"),
		airports: []models.AirportInfo{airport("venice", "VCE", "Marco Polo")},
		stations: []models.StationInfo{station("venice", "ITVSL", "Venezia Santa Lucia")},
		aliases:  []string{"Venezia"},
	},
	{
		city:     city("lisbon", "Lisbon", "Portugal", "PT", 38.7223, -9.1393, "Europe/Lisbon", "EUR", "pt"),
		airports: []models.AirportInfo{airport("lisbon", "LIS", "Humberto Delgado")},
		stations: []models.StationInfo{station("lisbon", "PTLSA", "Lisboa Santa Apolónia")},
		aliases:  []string{"Lisboa"},
	},
	{
		city:     city("brussels", "Brussels", "Belgium", "BE", 50.8503, 4.3517, "Europe/Brussels", "EUR", "fr"),
		airports: []models.AirportInfo{airport("brussels", "BRU", "Brussels Airport")},
		stations: []models.StationInfo{station("brussels", "BEBMI", "Bruxelles-Midi")},
		aliases:  []string{"Bruxelles", "Brussel"},
	},
	{
		city:     city("bruges", "Bruges", "Belgium", "BE", 51.2093, 3.2247, "Europe/Brussels", "EUR", "nl"),
		stations: []models.StationInfo{station("bruges", "BEBRG", "Brugge")},
		aliases:  []string{"Brugge"},
	},
	{
		city:     city("copenhagen", "Copenhagen", "Denmark", "DK", 55.6761, 12.5683, "Europe/Copenhagen", "DKK", "da"),
		airports: []models.AirportInfo{airport("copenhagen", "CPH", "Kastrup")},
		stations: []models.StationInfo{station("copenhagen", "DKKBH", "København H")},
		aliases:  []string{"København", "Kobenhavn"},
	},
	{
		city:     city("reykjavik", "Reykjavik", "Iceland", "IS", 64.1466, -21.9426, "Atlantic/Reykjavik", "ISK", "is"),
		airports: []models.AirportInfo{airport("reykjavik", "KEF", "Keflavík")},
		aliases:  []string{"Reykjavík"},
	},
	{
		city:     city("new-york", "New York", "United States", "US", 40.7128, -74.0060, "America/New_York", "USD", "en"),
		airports: []models.AirportInfo{airport("new-york", "JFK", "John F. Kennedy"), airport("new-york", "EWR", "Newark Liberty")},
		stations: []models.StationInfo{station("new-york", "USNYP", "Penn Station")},
		aliases:  []string{"New York City", "NYC"},
		major:    true,
	},
	{
		city:     city("tokyo", "Tokyo", "Japan", "JP", 35.6762, 139.6503, "Asia/Tokyo", "JPY", "ja"),
		airports: []models.AirportInfo{airport("tokyo", "HND", "Haneda"), airport("tokyo", "NRT", "Narita")},
		stations: []models.StationInfo{station("tokyo", "JPTYO", "Tokyo Station")},
		major:    true,
	},
}
