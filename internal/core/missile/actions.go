package missile

// PreUpdateAction runs at the start of every tick, before movement.
type PreUpdateAction interface {
	PreUpdate(p *Projectile)
}

// FinishAction runs when a flight ends. It may re-fire the projectile or change
// its destroy-on-finish flag; the destroy decision is taken after every finish
// action has run.
type FinishAction interface {
	OnFinish(p *Projectile)
}

// CollisionFilter decides whether an entity in range counts as a hit.
type CollisionFilter interface {
	Accept(p *Projectile, target EntityRef) bool
}

// CollisionAction runs once per accepted hit. Calling p.RequestStop from here
// aborts the remaining candidates of the current tick.
type CollisionAction interface {
	OnCollision(p *Projectile, target EntityRef)
}

type (
	PreUpdateFunc       func(p *Projectile)
	FinishFunc          func(p *Projectile)
	CollisionFilterFunc func(p *Projectile, target EntityRef) bool
	CollisionActionFunc func(p *Projectile, target EntityRef)
)

func (f PreUpdateFunc) PreUpdate(p *Projectile)                          { f(p) }
func (f FinishFunc) OnFinish(p *Projectile)                              { f(p) }
func (f CollisionFilterFunc) Accept(p *Projectile, target EntityRef) bool { return f(p, target) }
func (f CollisionActionFunc) OnCollision(p *Projectile, target EntityRef) { f(p, target) }

// AliveOnly filters out dead entities.
var AliveOnly CollisionFilter = CollisionFilterFunc(func(_ *Projectile, target EntityRef) bool {
	return target.IsAlive()
})
