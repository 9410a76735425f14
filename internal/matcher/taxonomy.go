package matcher

// DefaultTaxonomy groups ingredients that commonly stand in for each other.
// A name belongs to a group when it ends with one of the group's keywords, so
// compound keywords cover the cases where the head word alone is too generic.
var DefaultTaxonomy = map[string][]string{
	"allium":       {"onion", "scallion", "green onion", "spring onion", "shallot", "leek", "chive"},
	"chili":        {"chili", "chile", "jalapeno", "serrano", "habanero", "fresno", "chili pepper", "jalapeno pepper", "serrano pepper"},
	"bell_pepper":  {"bell pepper", "capsicum", "sweet pepper"},
	"stock":        {"stock", "broth", "bouillon", "stock cube", "bouillon cube"},
	"cream":        {"heavy cream", "whipping cream", "double cream", "single cream", "light cream"},
	"sugar":        {"sugar", "caster sugar", "granulated sugar", "cane sugar"},
	"pasta":        {"pasta", "spaghetti", "penne", "linguine", "fettuccine", "macaroni", "rigatoni", "fusilli", "tagliatelle"},
	"rice":         {"rice", "basmati", "jasmine rice", "arborio"},
	"hard_cheese":  {"parmesan", "parmigiano", "pecorino", "grana padano", "parmesan cheese", "pecorino romano", "parmigiano reggiano"},
	"leafy_green":  {"spinach", "kale", "chard", "collard", "spinach leaf", "collard green"},
	"salad_green":  {"lettuce", "romaine", "iceberg", "arugula", "rocket", "mesclun"},
	"cilantro":     {"cilantro", "coriander leaf", "cilantro leaf"},
	"squash":       {"zucchini", "courgette"},
	"eggplant":     {"eggplant", "aubergine"},
	"cooking_oil":  {"vegetable oil", "canola oil", "sunflower oil", "rapeseed oil", "corn oil"},
	"vinegar":      {"vinegar"},
	"citrus_juice": {"lemon juice", "lime juice"},
}
