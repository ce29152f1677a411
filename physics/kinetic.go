package physics

import "github.com/lixenwraith/pi-catcher/component"

// Fall integrates one tick of constant downward acceleration
// Velocity is decremented before the position update, so after N ticks from rest
// Velocity == -N*accel and Y == Y0 - accel*N*(N+1)/2
func Fall(p *component.Pie, accel float64) {
	// Semi-implicit: new velocity moves the pie this tick
	p.Velocity -= accel
	p.Y += p.Velocity
}
