package events

// SampleEvents returns the built-in list served when no source or snapshot has data.
func SampleEvents() []Event {
	return cloneEvents(sampleEvents)
}

var sampleEvents = []Event{
	{
		ID: "gnaoua-2026",
		Title: Localized{
			"en": "Gnaoua World Music Festival",
			"fr": "Festival Gnaoua Musiques du Monde",
			"es": "Festival de Musica Gnaoua del Mundo",
			"ar": "مهرجان كناوة وموسيقى العالم",
		},
		Description: Localized{
			"en": "The iconic Gnaoua festival in Essaouira featuring traditional Gnaoua music and world artists.",
			"fr": "Le festival iconique de Gnaoua a Essaouira avec de la musique traditionnelle Gnaoua et des artistes du monde entier.",
			"es": "El iconico festival Gnaoua en Essaouira con musica tradicional Gnaoua y artistas del mundo.",
			"ar": "مهرجان كناوة الشهير في الصويرة يضم موسيقى كناوة التقليدية وفنانين من جميع أنحاء العالم.",
		},
		Category:      "music",
		Region:        "marrakech-safi",
		City:          "Essaouira",
		Venue:         "Place Moulay Hassan",
		StartDate:     NewDate(2026, 6, 25),
		EndDate:       NewDate(2026, 6, 28),
		Price:         Price{Min: 0, Max: 0, Currency: CurrencyMAD, IsFree: true},
		Image:         "https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f?w=800",
		Tags:          []string{"gnaoua", "world music", "essaouira", "free"},
		Coordinates:   Coordinates{Lat: 31.5085, Lng: -9.7595},
		Organizer:     "Association Yerma Gnaoua",
		Website:       "https://www.festival-gnaoua.net",
		Accessibility: Accessibility{WheelchairAccess: true},
	},
	{
		ID: "mawazine-2026",
		Title: Localized{
			"en": "Mawazine Rhythms of the World",
			"fr": "Mawazine Rythmes du Monde",
			"es": "Mawazine Ritmos del Mundo",
			"ar": "موازين إيقاعات العالم",
		},
		Description: Localized{
			"en": "One of the largest music festivals in the world, featuring international and Moroccan artists.",
			"fr": "L'un des plus grands festivals de musique au monde, avec des artistes internationaux et marocains.",
			"es": "Uno de los festivales de musica mas grandes del mundo, con artistas internacionales y marroquies.",
			"ar": "أحد أكبر المهرجانات الموسيقية في العالم، يضم فنانين دوليين ومغاربة.",
		},
		Category:      "music",
		Region:        "rabat-sale-kenitra",
		City:          "Rabat",
		Venue:         "OLM Souissi",
		StartDate:     NewDate(2026, 6, 20),
		EndDate:       NewDate(2026, 6, 28),
		Price:         Price{Min: 0, Max: 500, Currency: CurrencyMAD},
		Image:         "https://images.unsplash.com/photo-1459749411175-04bf5292ceea?w=800",
		Tags:          []string{"international", "pop", "arabic music", "rabat"},
		Coordinates:   Coordinates{Lat: 33.9716, Lng: -6.8498},
		Organizer:     "Maroc Cultures",
		Website:       "https://www.festivalmawazine.ma",
		Accessibility: Accessibility{WheelchairAccess: true},
	},
}
