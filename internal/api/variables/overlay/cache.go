// Package overlay ghép lớp biến động (definitions + values) lên các model
// chủ thể: hydrate theo instance có memo hóa, truy cập đồng bộ cache-hoặc-rỗng,
// hydrate hàng loạt với đúng 2 truy vấn, và chèn field "variables" khi
// serialize JSON.
package overlay

// hydrationState trạng thái cache hydrate của một instance.
// Chỉ có hai trạng thái: chưa hydrate và đã hydrate; không có TTL,
// không có invalidation — cache sống theo vòng đời instance.
type hydrationState int

const (
	// StateEmpty instance chưa được hydrate (hoặc hydrate thất bại).
	StateEmpty hydrationState = iota
	// StateHydrated instance đã được hydrate; view được memo hóa.
	StateHydrated
)

// Cache là field cache hydrate nhúng trong model chủ thể.
// Các field unexported nên không được marshal ra JSON/BSON; zero value là
// trạng thái chưa hydrate. Cache không an toàn cho ghi đồng thời — mỗi
// instance model phục vụ một request.
type Cache struct {
	state hydrationState
	view  HydratedView
}

// IsHydrated cho biết instance đã được hydrate chưa.
func (c *Cache) IsHydrated() bool {
	return c.state == StateHydrated
}

// store lưu view và chuyển cache sang trạng thái hydrated.
func (c *Cache) store(view HydratedView) {
	c.view = view
	c.state = StateHydrated
}

// View trả về view đã memo hóa (ok = false khi chưa hydrate).
func (c *Cache) View() (HydratedView, bool) {
	if c.state != StateHydrated {
		return HydratedView{}, false
	}
	return c.view, true
}

// Reset đưa cache về trạng thái chưa hydrate.
func (c *Cache) Reset() {
	c.state = StateEmpty
	c.view = HydratedView{}
}

// Payload trả về dữ liệu theo shape yêu cầu để chèn vào JSON của chủ thể.
// Instance chưa hydrate trả về shape rỗng tương ứng, không lỗi, không log.
func (c *Cache) Payload(shape Shape) interface{} {
	if c.state == StateHydrated {
		return c.view.Payload(shape)
	}
	return EmptyView().Payload(shape)
}
