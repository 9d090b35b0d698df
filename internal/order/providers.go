package order

// DefaultRegion is the market the app launched in.
const DefaultRegion = "UAE"

// DefaultProviders lists the delivery provider labels offered per region.
// Labels only: the provider choice is embedded in the outbound message, not
// integrated with any delivery API.
func DefaultProviders() map[string][]string {
	return map[string][]string{
		"UAE":          {"Talabat", "Deliveroo", "Noon Food", "Careem", "Zomato", "Self Pickup"},
		"Saudi Arabia": {"HungerStation", "Jahez", "ToYou", "Mrsool", "Talabat", "Self Pickup"},
		"Kuwait":       {"Talabat", "Deliveroo", "Careem", "Cari", "Self Pickup"},
		"Qatar":        {"Talabat", "Snoonu", "Deliveroo", "Rafeeq", "Self Pickup"},
		"Bahrain":      {"Talabat", "Ahlan", "Jahez", "Self Pickup"},
		"Oman":         {"Talabat", "TM DONE", "Self Pickup"},
		"USA":          {"DoorDash", "Uber Eats", "Grubhub", "Postmates", "Seamless", "Caviar", "Self Pickup"},
		"Europe":       {"Just Eat", "Deliveroo", "Uber Eats", "Wolt", "Glovo", "Bolt Food", "Self Pickup"},
		"Asia":         {"GrabFood", "Foodpanda", "GoFood", "Swiggy", "Zomato", "Baemin", "Self Pickup"},
	}
}

// ProvidersFor returns the provider labels for a region, falling back to
// the default region when the region is unknown or empty.
func ProvidersFor(providers map[string][]string, region string) (string, []string) {
	if region != "" {
		if list, ok := providers[region]; ok {
			return region, list
		}
	}
	return DefaultRegion, providers[DefaultRegion]
}
