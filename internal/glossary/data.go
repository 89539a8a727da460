package glossary

// builtinCategories is the hand-authored glossary. Term ids are stable link targets
// (`/glossary#<id>`) and must never be renamed.
var builtinCategories = []Category{
	{
		ID:          "desert-types",
		Title:       "Desert Types",
		Description: "Morocco contains three distinct desert landscapes, each with different terrain and character.",
		Terms: []Term{
			{
				ID:            "erg",
				Term:          "Erg",
				Pronunciation: "urg",
				ArabicScript:  "عرق",
				Category:      "desert-types",
				Definition:    "A sand dune desert characterized by rolling dunes formed by wind-deposited sand. Morocco's two major ergs are Erg Chebbi near Merzouga and Erg Chigaga near M'Hamid.",
				Context:       "When most visitors imagine the Sahara, they picture an erg: the classic golden dunes.",
				Related:       []string{"Sahara", "Merzouga", "M'Hamid", "Erg Chebbi", "Erg Chigaga"},
				SeeAlso:       []string{"hammada", "reg"},
			},
			{
				ID:            "hammada",
				Term:          "Hammada",
				Pronunciation: "ha-MAH-da",
				ArabicScript:  "حمادة",
				Category:      "desert-types",
				Definition:    "A stone or rock plateau desert, characterized by barren, hard, rocky surfaces with minimal sand. The Agafay Desert near Marrakech is a hammada.",
				Context:       "Unlike the dunes of an erg, a hammada offers stark, lunar landscapes of ochre rock stretching to the horizon.",
				Related:       []string{"Agafay", "stone desert", "rock desert"},
				SeeAlso:       []string{"erg", "reg"},
			},
			{
				ID:            "reg",
				Term:          "Reg",
				Pronunciation: "reg",
				ArabicScript:  "رق",
				Category:      "desert-types",
				Definition:    "A gravel plain desert, covered with small stones and pebbles rather than sand or large rocks. Also called serir in some regions.",
				Context:       "Much of Morocco's desert terrain is technically reg: the flat, gravelly expanses between mountain ranges.",
				SeeAlso:       []string{"erg", "hammada"},
			},
		},
	},
	{
		ID:          "architecture",
		Title:       "Architecture",
		Description: "Traditional Moroccan building types and architectural elements.",
		Terms: []Term{
			{
				ID:            "riad",
				Term:          "Riad",
				Pronunciation: "ree-YAD",
				ArabicScript:  "رياض",
				Category:      "architecture",
				Definition:    "A traditional Moroccan house or palace with an interior garden or courtyard. The name derives from the Arabic word for garden (ryad). Riads are built inward, with rooms arranged around a central open space, often featuring a fountain, trees, or tiles.",
				Context:       "Most riads in the medinas have been converted to guesthouses, offering an intimate alternative to hotels.",
				Related:       []string{"Moroccan architecture", "courtyard house", "traditional accommodation"},
				SeeAlso:       []string{"dar", "medina"},
			},
			{
				ID:            "dar",
				Term:          "Dar",
				Pronunciation: "dar",
				ArabicScript:  "دار",
				Category:      "architecture",
				Definition:    "A traditional Moroccan townhouse, similar to a riad but typically smaller and without a garden, featuring a simple courtyard with a light well instead.",
				Context:       "The distinction between dar and riad is often blurred in tourism marketing, with many dars called riads.",
				SeeAlso:       []string{"riad"},
			},
			{
				ID:            "kasbah",
				Term:          "Kasbah",
				Pronunciation: "KAZ-bah",
				ArabicScript:  "قصبة",
				Category:      "architecture",
				Definition:    "A fortified stronghold or citadel, typically built of pisé (rammed earth). Kasbahs served as the residences of local chieftains and as defensive structures along trade routes.",
				Context:       "The kasbahs of the Draa Valley and Dades Gorge date from the 17th-19th centuries, built to protect caravan routes.",
				Related:       []string{"fortress", "citadel", "pisé", "rammed earth"},
				SeeAlso:       []string{"ksar", "pise"},
			},
			{
				ID:            "ksar",
				Term:          "Ksar",
				Pronunciation: "k-SAR",
				ArabicScript:  "قصر",
				Category:      "architecture",
				Definition:    "A fortified village, larger than a kasbah, consisting of multiple dwellings surrounded by defensive walls. Plural: ksour.",
				Context:       "Ait Benhaddou is Morocco's most famous ksar, a UNESCO World Heritage site.",
				Related:       []string{"fortified village", "Ait Benhaddou", "ksour"},
				SeeAlso:       []string{"kasbah"},
			},
			{
				ID:            "medina",
				Term:          "Medina",
				Pronunciation: "meh-DEE-na",
				ArabicScript:  "مدينة",
				Category:      "architecture",
				Definition:    "The old walled city center, characterized by narrow winding streets, traditional architecture, and car-free zones. Morocco's imperial cities (Fes, Marrakech, Meknes, and Rabat) each have historic medinas.",
				Context:       "Fes el-Bali is the world's largest car-free urban area and one of the best-preserved medieval cities.",
				Related:       []string{"old city", "walled city", "Fes el-Bali", "historic quarter"},
				SeeAlso:       []string{"derb", "souk"},
			},
			{
				ID:            "derb",
				Term:          "Derb",
				Pronunciation: "derb",
				ArabicScript:  "درب",
				Category:      "architecture",
				Definition:    "A narrow alley or lane within a medina, often dead-ending at a cluster of houses.",
				Context:       "Medina addresses typically reference the derb name rather than street numbers.",
				SeeAlso:       []string{"medina"},
			},
			{
				ID:            "pise",
				Term:          "Pisé",
				Pronunciation: "pee-ZAY",
				Category:      "architecture",
				Definition:    "Rammed earth construction technique using compacted layers of soil, clay, and straw. The traditional building material for kasbahs and ksour in southern Morocco.",
				Context:       "Pisé buildings require constant maintenance; without repair, they dissolve back into the earth within decades.",
				Related:       []string{"rammed earth", "adobe", "earth construction"},
				SeeAlso:       []string{"kasbah", "ksar"},
			},
		},
	},
	{
		ID:          "commerce-craft",
		Title:       "Commerce & Craft",
		Description: "Traditional markets, workshops, and artisanal techniques.",
		Terms: []Term{
			{
				ID:            "souk",
				Term:          "Souk",
				Pronunciation: "sook",
				ArabicScript:  "سوق",
				Category:      "commerce-craft",
				Definition:    "A traditional market or bazaar, typically organized by trade or product type. Souks may be permanent structures within a medina or weekly open-air markets in rural areas.",
				Context:       "Marrakech's souks are organized by craft: the souk of dyers, the souk of metalworkers, the souk of leather goods.",
				Related:       []string{"market", "bazaar", "marketplace"},
				SeeAlso:       []string{"medina", "fondouk"},
			},
			{
				ID:            "fondouk",
				Term:          "Fondouk",
				Pronunciation: "fon-DOOK",
				ArabicScript:  "فندق",
				Category:      "commerce-craft",
				Definition:    "A historic caravanserai or merchants' inn, typically featuring a central courtyard surrounded by two stories of rooms and storage. Many now serve as artisan workshops.",
				Context:       "Fes has over 100 historic fondouks, some dating to the 13th century.",
				Related:       []string{"caravanserai", "khan", "merchants' inn"},
				SeeAlso:       []string{"souk"},
			},
			{
				ID:            "zellige",
				Term:          "Zellige",
				Pronunciation: "zel-LEEJ",
				ArabicScript:  "زليج",
				Category:      "commerce-craft",
				Definition:    "Traditional Moroccan mosaic tilework made from hand-cut geometric pieces of glazed terracotta. Each piece is individually chiseled and assembled face-down to create intricate patterns.",
				Context:       "Zellige work requires years of apprenticeship. The craft is centered in Fes, where master craftsmen (maâlems) maintain techniques unchanged for centuries.",
				Related:       []string{"mosaic", "tilework", "Islamic geometric art", "Moroccan tiles"},
				SeeAlso:       []string{"maalem"},
			},
			{
				ID:            "tadelakt",
				Term:          "Tadelakt",
				Pronunciation: "TAD-el-akt",
				ArabicScript:  "تدلاكت",
				Category:      "commerce-craft",
				Definition:    "A traditional waterproof lime plaster, polished with flat stones and treated with olive oil soap. Originally used in hammams, now popular for bathrooms and feature walls.",
				Context:       "Authentic tadelakt uses lime from the Marrakech region and requires specialized application techniques.",
				Related:       []string{"lime plaster", "Moroccan plaster", "waterproof finish"},
			},
			{
				ID:            "khettara",
				Term:          "Khettara",
				Pronunciation: "khe-TAR-ah",
				ArabicScript:  "خطارة",
				Category:      "commerce-craft",
				Definition:    "An ancient underground irrigation system using gravity-fed tunnels to channel water from mountain aquifers to agricultural areas. Similar to Persian qanats. Some date back over 1,000 years.",
				Context:       "The khettaras of the Tafilalt oasis once numbered over 300; today fewer than 30 remain functional.",
				Related:       []string{"qanat", "irrigation", "underground canal", "foggara"},
			},
		},
	},
	{
		ID:          "people-culture",
		Title:       "People & Culture",
		Description: "Ethnic groups, languages, and cultural traditions.",
		Terms: []Term{
			{
				ID:            "amazigh",
				Term:          "Amazigh",
				Pronunciation: "ah-mah-ZEEG",
				Tifinagh:      "ⴰⵎⴰⵣⵉⵖ",
				ArabicScript:  "أمازيغ",
				Category:      "people-culture",
				Definition:    "The indigenous people of North Africa, also known as Berbers. The name means 'free people' in Tamazight. Amazigh culture predates Arab arrival by millennia.",
				Context:       "Approximately 40% of Moroccans are ethnically Amazigh, with the highest concentrations in the Atlas Mountains and Rif.",
				Related:       []string{"Berber", "indigenous North African", "Imazighen"},
				SeeAlso:       []string{"tamazight", "tifinagh"},
			},
			{
				ID:            "tamazight",
				Term:          "Tamazight",
				Pronunciation: "tam-ah-ZEEGT",
				Tifinagh:      "ⵜⴰⵎⴰⵣⵉⵖⵜ",
				Category:      "people-culture",
				Definition:    "The family of Amazigh languages spoken across North Africa. In Morocco, the three main variants are Tashelhit (south), Tamazight (central Atlas), and Tarifit (Rif). Recognized as an official language of Morocco since 2011.",
				Related:       []string{"Berber language", "Tashelhit", "Tarifit", "Amazigh language"},
				SeeAlso:       []string{"amazigh", "tifinagh"},
			},
			{
				ID:            "tifinagh",
				Term:          "Tifinagh",
				Pronunciation: "tif-in-AH",
				Tifinagh:      "ⵜⵉⴼⵉⵏⴰⵖ",
				Category:      "people-culture",
				Definition:    "The traditional alphabet used to write Amazigh languages, with origins dating back over 2,000 years. A modernized version was adopted for official use in Morocco in 2003.",
				Context:       "You'll see Tifinagh script on government buildings and road signs alongside Arabic and French.",
				Related:       []string{"Berber alphabet", "Amazigh script", "Libyco-Berber"},
				SeeAlso:       []string{"tamazight", "amazigh"},
			},
			{
				ID:            "gnaoua",
				Term:          "Gnaoua",
				Pronunciation: "g-NOW-ah",
				ArabicScript:  "كناوة",
				Category:      "people-culture",
				Definition:    "A spiritual music tradition with roots in sub-Saharan African and Sufi practices. Gnaoua ceremonies (lilas) use hypnotic bass rhythms, metal castanets (qraqeb), and call-and-response singing.",
				Context:       "The Essaouira Gnaoua Festival each June is the largest celebration of this tradition.",
				Related:       []string{"Gnawa", "spiritual music", "trance music", "African diaspora"},
				SeeAlso:       []string{"lila", "maalem"},
			},
			{
				ID:            "lila",
				Term:          "Lila",
				Pronunciation: "LEE-la",
				ArabicScript:  "ليلة",
				Category:      "people-culture",
				Definition:    "An all-night Gnaoua ceremony combining music, dance, and spiritual healing. Literally 'night' in Arabic. Each lila progresses through a sequence of ritual songs invoking different spirits (mluk).",
				Context:       "Authentic lilas are private spiritual ceremonies, not tourist performances.",
				Related:       []string{"Gnaoua ceremony", "spiritual healing", "trance ritual"},
				SeeAlso:       []string{"gnaoua", "maalem"},
			},
			{
				ID:            "maalem",
				Term:          "Maâlem",
				Pronunciation: "mah-ah-LEM",
				ArabicScript:  "معلم",
				Category:      "people-culture",
				Definition:    "A master craftsman or musician. In Gnaoua tradition, a maâlem leads the spiritual ceremonies. In craft, a maâlem has completed formal apprenticeship and mastered their trade.",
				Context:       "The title carries significant respect. It denotes not just skill but transmission of traditional knowledge.",
				Related:       []string{"master craftsman", "master musician", "guild master"},
				SeeAlso:       []string{"gnaoua", "zellige"},
			},
			{
				ID:            "moussem",
				Term:          "Moussem",
				Pronunciation: "MOO-sem",
				ArabicScript:  "موسم",
				Category:      "people-culture",
				Definition:    "A religious festival or pilgrimage, typically honoring a local saint (marabout). Moussems combine religious devotion with markets, music, and social gathering.",
				Context:       "The Imilchil Marriage Moussem in the High Atlas is one of Morocco's most famous, where young people traditionally chose marriage partners.",
				Related:       []string{"festival", "pilgrimage", "saint's day", "religious gathering"},
			},
		},
	},
	{
		ID:          "geography",
		Title:       "Geography",
		Description: "Mountains, valleys, and regional terminology.",
		Terms: []Term{
			{
				ID:           "high-atlas",
				Term:         "High Atlas",
				ArabicScript: "الأطلس الكبير",
				Category:     "geography",
				Definition:   "Morocco's highest mountain range, running southwest to northeast for approximately 1,000 kilometers. Includes Jebel Toubkal (4,167m), the highest peak in North Africa.",
				Context:      "The High Atlas separates the Mediterranean climate of the north from the Saharan climate of the south.",
				Related:      []string{"Atlas Mountains", "Toubkal", "mountain range"},
				SeeAlso:      []string{"jebel", "middle-atlas", "anti-atlas"},
			},
			{
				ID:           "middle-atlas",
				Term:         "Middle Atlas",
				ArabicScript: "الأطلس المتوسط",
				Category:     "geography",
				Definition:   "The northernmost of Morocco's Atlas ranges, characterized by cedar forests, lakes, and Amazigh villages. Lower and wetter than the High Atlas.",
				Context:      "The Middle Atlas is home to the endangered Barbary macaque and the cedar forests of Azrou.",
				Related:      []string{"Atlas Mountains", "Azrou", "Ifrane"},
				SeeAlso:      []string{"high-atlas"},
			},
			{
				ID:           "anti-atlas",
				Term:         "Anti-Atlas",
				ArabicScript: "الأطلس الصغير",
				Category:     "geography",
				Definition:   "The southernmost Atlas range, older and more eroded than the High Atlas. Known for dramatic rock formations, ancient granites, and almond groves.",
				Context:      "The Anti-Atlas contains some of the oldest exposed rock on Earth, dating back over 2 billion years.",
				Related:      []string{"Atlas Mountains", "Tafraoute", "geological formations"},
				SeeAlso:      []string{"high-atlas"},
			},
			{
				ID:            "draa-valley",
				Term:          "Draa Valley",
				Pronunciation: "drah",
				ArabicScript:  "وادي درعة",
				Category:      "geography",
				Definition:    "Morocco's longest river valley, stretching from the Atlas Mountains toward the Sahara. The Draa River feeds a chain of oases and palm groves, with kasbahs and ksour lining its banks.",
				Context:       "The valley was historically a key caravan route for trans-Saharan trade in gold, salt, and slaves.",
				Related:       []string{"Draa River", "palm oasis", "caravan route"},
				SeeAlso:       []string{"kasbah", "ksar", "oasis"},
			},
			{
				ID:            "jebel",
				Term:          "Jebel",
				Pronunciation: "JEB-el",
				ArabicScript:  "جبل",
				Category:      "geography",
				Definition:    "Mountain or hill. Used in place names throughout Morocco: Jebel Toubkal, Jebel Saghro, Jebel Siroua.",
				Context:       "The Arabic term; the Amazigh equivalent is 'Adrar.'",
				Related:       []string{"mountain", "Adrar", "peak"},
			},
			{
				ID:            "oued",
				Term:          "Oued",
				Pronunciation: "wed",
				ArabicScript:  "واد",
				Category:      "geography",
				Definition:    "A river or riverbed, often dry except during rainy season. Also spelled 'wadi.'",
				Context:       "Most Moroccan oueds are seasonal: raging torrents in spring, bone-dry wadis in summer.",
				Related:       []string{"wadi", "river", "riverbed", "seasonal river"},
			},
			{
				ID:           "oasis",
				Term:         "Oasis",
				ArabicScript: "واحة",
				Category:     "geography",
				Definition:   "A fertile area in the desert sustained by groundwater or river water. Moroccan oases typically feature date palms, irrigation channels, and fortified villages (ksour).",
				Context:      "The Tafilalt oasis near Erfoud is one of the largest in Morocco, with over a million palm trees.",
				Related:      []string{"palm grove", "date palms", "Tafilalt", "Zagora"},
				SeeAlso:      []string{"khettara", "ksar"},
			},
		},
	},
	{
		ID:          "food-drink",
		Title:       "Food & Drink",
		Description: "Traditional Moroccan cuisine and culinary terms.",
		Terms: []Term{
			{
				ID:            "tagine",
				Term:          "Tagine",
				Pronunciation: "tah-JEEN",
				ArabicScript:  "طاجين",
				Category:      "food-drink",
				Definition:    "Both a conical clay cooking vessel and the slow-cooked stew prepared in it. The cone-shaped lid returns condensation to the dish, allowing cooking with minimal liquid.",
				Context:       "Regional variations are significant: Marrakech favors sweet-savory combinations; Fes uses more preserved lemons and olives.",
				Related:       []string{"Moroccan stew", "clay pot cooking", "slow cooking"},
			},
			{
				ID:            "harira",
				Term:          "Harira",
				Pronunciation: "ha-REE-ra",
				ArabicScript:  "حريرة",
				Category:      "food-drink",
				Definition:    "A tomato-based soup with chickpeas, lentils, and herbs, traditionally served to break the fast during Ramadan. Recipes vary by region and family.",
				Context:       "During Ramadan, harira is served at sunset with dates, chebakia (honey pastries), and hard-boiled eggs.",
				Related:       []string{"Ramadan soup", "Moroccan soup", "iftar"},
			},
			{
				ID:            "couscous",
				Term:          "Couscous",
				Pronunciation: "KOOS-koos",
				ArabicScript:  "كسكس",
				Category:      "food-drink",
				Definition:    "Steamed semolina granules, traditionally hand-rolled and served with vegetables and meat. Friday couscous after midday prayers is a Moroccan institution.",
				Context:       "Authentic couscous is steamed three times over a simmering stew; instant couscous is a pale imitation.",
				Related:       []string{"seksu", "semolina", "Friday lunch"},
			},
			{
				ID:            "msemen",
				Term:          "Msemen",
				Pronunciation: "m-SEH-men",
				ArabicScript:  "مسمن",
				Category:      "food-drink",
				Definition:    "A pan-fried flatbread made by folding and stretching dough into thin layers, creating a flaky, slightly chewy texture. Served for breakfast with honey or cheese.",
				Related:       []string{"Moroccan flatbread", "rghaif", "meloui", "breakfast bread"},
			},
			{
				ID:            "pastilla",
				Term:          "Pastilla",
				Pronunciation: "pas-TEE-ya",
				ArabicScript:  "بسطيلة",
				Category:      "food-drink",
				Definition:    "A layered pie of thin warqa pastry filled with pigeon or chicken, almonds, eggs, and spices, dusted with cinnamon and powdered sugar. A signature dish of Fes.",
				Context:       "The sweet-savory combination of meat with sugar and cinnamon reflects medieval Andalusian influence.",
				Related:       []string{"bastilla", "b'stilla", "pigeon pie", "Fassi cuisine"},
			},
			{
				ID:            "atay",
				Term:          "Atay",
				Pronunciation: "ah-TAI",
				ArabicScript:  "أتاي",
				Category:      "food-drink",
				Definition:    "Moroccan mint tea, made with Chinese gunpowder green tea, fresh spearmint, and generous sugar. Poured from height to create a frothy top.",
				Context:       "Refusing tea is considered impolite. The ritual of preparation and serving is as important as the drink itself.",
				Related:       []string{"Moroccan mint tea", "whiskey Berber", "nana mint"},
			},
		},
	},
}

// builtinVariants lists the irregular surface forms that resolve to a term id. It is
// reviewed by hand; forms missing here simply never link. Entries for ids that are not
// in the glossary are ignored when a dictionary is built.
//
// The maalem row deliberately leaves out "ma창lem"/"ma창lems": those keys are an encoding
// artifact of "maâlem" and are not real spellings.
//
// The gnaoua row departs from the site's earlier table, which filed "gnawa" under a
// "gnawa" id that no term carries, so that spelling never linked. Here it sits under the
// real id and "Gnawa" links to the Gnaoua entry.
var builtinVariants = Variants{
	"riad":    {"riads"},
	"kasbah":  {"kasbahs", "casbah", "casbahs"},
	"ksar":    {"ksour", "ksars"},
	"souk":    {"souks"},
	"medina":  {"medinas"},
	"hammam":  {"hammams"},
	"tagine":  {"tagines", "tajine", "tajines"},
	"fondouk": {"fondouks", "funduq", "funduqs"},
	"derb":    {"derbs"},
	"erg":     {"ergs"},
	"gnaoua":  {"gnawa"},
	"maalem":  {"maalem", "maalems", "maâlems"},
}
