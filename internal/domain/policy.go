package domain

// ResolveDailyLimit вычисляет дневной лимит слотов на шефа для (кухня, дата).
// Цепочка приоритетов, побеждает первое положительное значение:
//  1. override на дату (любой ряд с заданным лимитом)
//  2. недельное расписание на день недели
//  3. дефолт локации
//  4. жёсткий fallback DefaultDailyBookingLimit
//
// Некорректные и неположительные значения пропускаются, а не считаются нулём.
func ResolveDailyLimit(overrides []*DateOverride, weekly *WeeklyAvailability, location *Location) int {
	sources := []func() *int{
		func() *int {
			for _, o := range overrides {
				if o.MaxSlotsPerChef != nil && *o.MaxSlotsPerChef > 0 {
					return o.MaxSlotsPerChef
				}
			}
			return nil
		},
		func() *int {
			if weekly == nil {
				return nil
			}
			return weekly.MaxSlotsPerChef
		},
		func() *int {
			if location == nil {
				return nil
			}
			return &location.DefaultDailyBookingLimit
		},
	}

	for _, source := range sources {
		if v := source(); v != nil && *v > 0 {
			return *v
		}
	}

	return DefaultDailyBookingLimit
}
