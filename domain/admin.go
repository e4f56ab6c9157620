package domain

type AdminStats struct {
	TotalUsers    int64   `json:"totalUsers"`
	TotalSellers  int64   `json:"totalSellers"`
	TotalProducts int64   `json:"totalProducts"`
	TotalRevenue  float64 `json:"totalRevenue"`
}
