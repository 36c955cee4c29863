package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const defaultNamespace = "ecofinds"

// BusinessMetrics 业务指标，nil 接收者上的方法均为空操作
type BusinessMetrics struct {
	cartAdds           *prometheus.CounterVec
	checkoutsCompleted prometheus.Counter
	checkoutsRejected  *prometheus.CounterVec
	checkoutAmount     prometheus.Histogram
	checkoutItems      prometheus.Histogram
	productViews       prometheus.Counter
	productsListed     prometheus.Counter
	signups            prometheus.Counter
	logins             *prometheus.CounterVec
}

// NewBusinessMetrics 创建并注册业务指标
func NewBusinessMetrics(namespace string, registry *prometheus.Registry) *BusinessMetrics {
	if namespace == "" {
		namespace = defaultNamespace
	}
	const subsystem = "business"
	factory := promauto.With(registry)

	return &BusinessMetrics{
		cartAdds: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cart_adds_total",
			Help:      "Total add to cart attempts by result",
		}, []string{"result"}),
		checkoutsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "checkouts_completed_total",
			Help:      "Total completed checkouts",
		}),
		checkoutsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "checkouts_rejected_total",
			Help:      "Total rejected checkouts by reason",
		}, []string{"reason"}),
		checkoutAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "checkout_amount",
			Help:      "Total amount of completed checkouts",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 5000},
		}),
		checkoutItems: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "checkout_items",
			Help:      "Number of cart lines per completed checkout",
			Buckets:   []float64{1, 2, 3, 5, 10, 20},
		}),
		productViews: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "product_views_total",
			Help:      "Total product detail views",
		}),
		productsListed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "products_listed_total",
			Help:      "Total products created by sellers",
		}),
		signups: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "signups_total",
			Help:      "Total registered users",
		}),
		logins: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "logins_total",
			Help:      "Total login attempts by result",
		}, []string{"result"}),
	}
}

// CartAdd 记录加购结果（added / merged / rejected）
func (m *BusinessMetrics) CartAdd(result string) {
	if m == nil {
		return
	}
	m.cartAdds.WithLabelValues(result).Inc()
}

// CheckoutCompleted 记录一次成功结算
func (m *BusinessMetrics) CheckoutCompleted(amount float64, items int) {
	if m == nil {
		return
	}
	m.checkoutsCompleted.Inc()
	m.checkoutAmount.Observe(amount)
	m.checkoutItems.Observe(float64(items))
}

// CheckoutRejected 记录一次被拒绝的结算
func (m *BusinessMetrics) CheckoutRejected(reason string) {
	if m == nil {
		return
	}
	m.checkoutsRejected.WithLabelValues(reason).Inc()
}

// ProductViewed 记录商品详情浏览
func (m *BusinessMetrics) ProductViewed() {
	if m == nil {
		return
	}
	m.productViews.Inc()
}

// ProductListed 记录新发布商品
func (m *BusinessMetrics) ProductListed() {
	if m == nil {
		return
	}
	m.productsListed.Inc()
}

// Signup 记录注册
func (m *BusinessMetrics) Signup() {
	if m == nil {
		return
	}
	m.signups.Inc()
}

// Login 记录登录结果（success / failed）
func (m *BusinessMetrics) Login(result string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(result).Inc()
}
