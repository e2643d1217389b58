package store

import "fmt"

// Eaten-meal marks are kept per weekly plan so a newly generated week starts
// clean. These back the in-memory set held by the recipe gateway between
// invocations.

func (s *Store) EatenMealIDs(weeklyPlanID int64) ([]string, error) {
	rows, err := s.db.Query(`SELECT meal_id FROM eaten_meals WHERE weekly_plan_id = ? ORDER BY meal_id`, weeklyPlanID)
	if err != nil {
		return nil, fmt.Errorf("list eaten meals: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan eaten meal: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate eaten meals: %w", err)
	}
	return ids, nil
}

func (s *Store) MarkMealEaten(weeklyPlanID int64, mealID string) error {
	_, err := s.db.Exec(`
INSERT INTO eaten_meals(meal_id, weekly_plan_id) VALUES(?, ?)
ON CONFLICT(meal_id) DO UPDATE SET weekly_plan_id=excluded.weekly_plan_id
`, mealID, weeklyPlanID)
	if err != nil {
		return fmt.Errorf("mark meal eaten: %w", err)
	}
	return nil
}

func (s *Store) UnmarkMealEaten(mealID string) error {
	if _, err := s.db.Exec(`DELETE FROM eaten_meals WHERE meal_id = ?`, mealID); err != nil {
		return fmt.Errorf("unmark meal eaten: %w", err)
	}
	return nil
}
