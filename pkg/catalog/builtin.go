package catalog

// Grid item categories.
const (
	CategoryScene Category = "scene"
	CategoryTrap  Category = "trap"
)

// Zombie categories.
const (
	CategoryBasic   Category = "basic"
	CategoryArmored Category = "armored"
	CategorySpecial Category = "special"
)

var gridItems = []Item{
	{"gravestone_egypt", "Egypt Gravestone", CategoryScene, "gravestone_egypt.png"},
	{"gravestone_dark", "Dark Ages Gravestone", CategoryScene, "gravestone_dark.png"},
	{"gravestoneSunOnDestruction", "Sun Gravestone", CategoryScene, "gravestoneSunOnDestruction.png"},
	{"gravestonePlantfoodOnDestruction", "Plant Food Gravestone", CategoryScene, "gravestonePlantfoodOnDestruction.png"},

	{"heian_box_sun", "Sun Offering Box", CategoryScene, "heian_box_sun.png"},
	{"heian_box_plantfood", "Plant Food Offering Box", CategoryScene, "heian_box_plantfood.png"},
	{"heian_box_levelup", "Level Up Offering Box", CategoryScene, "heian_box_levelup.png"},
	{"heian_box_seedpacket", "Seed Packet Offering Box", CategoryScene, "heian_box_seedpacket.png"},

	{"slider_up", "Ice Floe (up)", CategoryScene, "slider_up.png"},
	{"slider_down", "Ice Floe (down)", CategoryScene, "slider_down.png"},
	{"slider_up_modern", "Modern Buoy (up)", CategoryScene, "slider_up_modern.png"},
	{"slider_down_modern", "Modern Buoy (down)", CategoryScene, "slider_down_modern.png"},

	{"goldtile", "Gold Tile", CategoryScene, "goldtile.png"},
	{"fake_mold", "Mold Tile", CategoryScene, "fake_mold.png"},
	{"lilipad", "Lily Pad", CategoryScene, "lilypad.jpg"},

	{"zombiepotion_speed", "Speed Potion", CategoryTrap, "zombiepotion_speed.png"},
	{"zombiepotion_toughness", "Toughness Potion", CategoryTrap, "zombiepotion_toughness.png"},
	{"zombiepotion_invisible", "Invisibility Potion", CategoryTrap, "zombiepotion_invisible.png"},
	{"zombiepotion_poison", "Poison Potion", CategoryTrap, "zombiepotion_poison.png"},

	{"boulder_trap_falling_forward", "Boulder Trap", CategoryTrap, "boulder_trap_falling_forward.png"},
	{"flame_spreader_trap", "Flame Trap", CategoryTrap, "flame_spreader_trap.png"},
	{"bufftile_shield", "Shield Tile", CategoryTrap, "bufftile_shield.png"},
	{"bufftile_speed", "Speed Tile", CategoryTrap, "bufftile_speed.png"},
	{"bufftile_attack", "Attack Tile", CategoryTrap, "bufftile_attack.png"},
	{"zombie_bound_tile", "Zombie Bounce Tile", CategoryTrap, "zombie_bound_tile.png"},
	{"zombie_changer", "Zombie Changer", CategoryTrap, "zombie_changer.png"},
}

var zombies = []Item{
	{"tutorial", "Basic Zombie", CategoryBasic, "tutorial.png"},
	{"tutorial_flag", "Flag Zombie", CategoryBasic, "tutorial_flag.png"},
	{"tutorial_armor1", "Conehead Zombie", CategoryArmored, "tutorial_armor1.png"},
	{"tutorial_armor2", "Buckethead Zombie", CategoryArmored, "tutorial_armor2.png"},
	{"mummy", "Mummy Zombie", CategoryBasic, "mummy.png"},
	{"mummy_armor1", "Conehead Mummy", CategoryArmored, "mummy_armor1.png"},
	{"mummy_armor2", "Buckethead Mummy", CategoryArmored, "mummy_armor2.png"},
	{"ra", "Ra Zombie", CategorySpecial, "ra.png"},
	{"camel_onehump", "Camel Zombies", CategorySpecial, "camel_onehump.png"},
	{"explorer", "Explorer Zombie", CategorySpecial, "explorer.png"},
	{"tomb_raiser", "Tomb Raiser Zombie", CategorySpecial, "tomb_raiser.png"},
	{"pharaoh", "Pharaoh Zombie", CategoryArmored, "pharaoh.png"},
	{"pirate", "Swashbuckler Zombie", CategoryBasic, "pirate.png"},
	{"cowboy", "Cowboy Zombie", CategoryBasic, "cowboy.png"},
	{"dark", "Peasant Zombie", CategoryBasic, "dark.png"},
	{"dark_imp_dragon", "Imp Dragon Zombie", CategorySpecial, "dark_imp_dragon.png"},
}

// GridItems returns the built-in grid item catalog.
func GridItems() *Static {
	return NewStatic("images/griditems", gridItems)
}

// Zombies returns the built-in zombie catalog.
func Zombies() *Static {
	return NewStatic("images/zombies", zombies)
}
